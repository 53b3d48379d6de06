// Package handler exposes the identity widget's operations over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"release-gateway/internal/identity"
	derrors "release-gateway/pkg/domain-errors"
	"release-gateway/pkg/platform/httputil"
)

// Service defines the identity operations the handler depends on.
type Service interface {
	Current(ctx context.Context) identity.Record
	Attachments() map[identity.FileSlot]identity.Attachment
	UpdateProfileField(ctx context.Context, field identity.ProfileField, value string) error
	UpdateFileSlot(ctx context.Context, slot identity.FileSlot, att identity.Attachment) error
	UpdateConsent(ctx context.Context, field identity.ConsentField, granted bool) error
	CanSubmit(ctx context.Context) bool
	Submit(ctx context.Context) error
	Reset(ctx context.Context) error
	SetStatus(ctx context.Context, status identity.Status) error
}

// Handler is the thin HTTP layer over the identity service.
type Handler struct {
	identity Service
	log      *slog.Logger
	demoMode bool
}

func New(service Service, log *slog.Logger, demoMode bool) *Handler {
	return &Handler{identity: service, log: log, demoMode: demoMode}
}

// Register registers the identity routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/identity", h.handleCurrent)
	r.Post("/identity/profile", h.handleProfileField)
	r.Post("/identity/files", h.handleFileSlot)
	r.Post("/identity/consents", h.handleConsent)
	r.Post("/identity/submit", h.handleSubmit)
	r.Post("/identity/reset", h.handleReset)
	r.Post("/identity/status", h.handleSetStatus)
}

type stateResponse struct {
	Record      identity.Record                           `json:"record"`
	Attachments map[identity.FileSlot]identity.Attachment `json:"attachments"`
	CanSubmit   bool                                      `json:"canSubmit"`
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httputil.WriteJSON(w, http.StatusOK, stateResponse{
		Record:      h.identity.Current(ctx),
		Attachments: h.identity.Attachments(),
		CanSubmit:   h.identity.CanSubmit(ctx),
	})
}

type profileFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) handleProfileField(w http.ResponseWriter, r *http.Request) {
	var req profileFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	field, err := identity.ParseProfileField(req.Field)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !govalidator.StringLength(req.Value, "0", "512") {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidInput, "value too long"))
		return
	}
	if err := h.identity.UpdateProfileField(r.Context(), field, req.Value); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type fileSlotRequest struct {
	Slot string `json:"slot"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

func (h *Handler) handleFileSlot(w http.ResponseWriter, r *http.Request) {
	var req fileSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	slot, err := identity.ParseFileSlot(req.Slot)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !govalidator.StringLength(req.Name, "0", "255") {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidInput, "file name too long"))
		return
	}
	att := identity.Attachment{Name: req.Name, Size: req.Size}
	if err := h.identity.UpdateFileSlot(r.Context(), slot, att); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type consentRequest struct {
	Field   string `json:"field"`
	Granted bool   `json:"granted"`
}

func (h *Handler) handleConsent(w http.ResponseWriter, r *http.Request) {
	var req consentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	field, err := identity.ParseConsentField(req.Field)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.identity.UpdateConsent(r.Context(), field, req.Granted); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Submit(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status": string(identity.StatusPending),
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Reset(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// handleSetStatus is the demo control surface standing in for the external
// verifier callback. Disabled outside demo mode.
func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	if !h.demoMode {
		httputil.WriteError(w, derrors.New(derrors.CodeNotFound, "demo controls disabled"))
		return
	}
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	status, err := identity.ParseStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.identity.SetStatus(r.Context(), status); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}
