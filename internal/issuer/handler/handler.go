// Package handler exposes the release creation flow over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"release-gateway/internal/catalog"
	"release-gateway/internal/issuer"
	derrors "release-gateway/pkg/domain-errors"
	"release-gateway/pkg/platform/httputil"
)

// Service defines the issuer-flow operations the handler depends on.
type Service interface {
	StartDraft(ctx context.Context) issuer.Draft
	Get(ctx context.Context, id string) (issuer.Draft, error)
	Update(ctx context.Context, id string, patch issuer.Patch) (issuer.Draft, error)
	Advance(ctx context.Context, id string) (issuer.Draft, error)
	Back(ctx context.Context, id string) (issuer.Draft, error)
	CanPublish(ctx context.Context, id string) (bool, error)
	Publish(ctx context.Context, id string) (catalog.Release, error)
}

type Handler struct {
	issuer Service
	log    *slog.Logger
}

func New(service Service, log *slog.Logger) *Handler {
	return &Handler{issuer: service, log: log}
}

// Register registers the issuer-flow routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/issuer/drafts", h.handleStart)
	r.Get("/issuer/drafts/{id}", h.handleGet)
	r.Patch("/issuer/drafts/{id}", h.handleUpdate)
	r.Post("/issuer/drafts/{id}/advance", h.handleAdvance)
	r.Post("/issuer/drafts/{id}/back", h.handleBack)
	r.Post("/issuer/drafts/{id}/publish", h.handlePublish)
}

type draftResponse struct {
	issuer.Draft
	UnitCount  int64 `json:"unitCount"`
	CanPublish bool  `json:"canPublish"`
}

func (h *Handler) writeDraft(w http.ResponseWriter, r *http.Request, status int, draft issuer.Draft) {
	canPublish, err := h.issuer.CanPublish(r.Context(), draft.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, status, draftResponse{
		Draft:      draft,
		UnitCount:  draft.UnitCount(),
		CanPublish: canPublish,
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	draft := h.issuer.StartDraft(r.Context())
	h.writeDraft(w, r, http.StatusCreated, draft)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	draft, err := h.issuer.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeDraft(w, r, http.StatusOK, draft)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch issuer.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	if patch.Title != nil && !govalidator.StringLength(*patch.Title, "0", "512") {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidInput, "title too long"))
		return
	}
	if patch.Issuer != nil && !govalidator.StringLength(*patch.Issuer, "0", "512") {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidInput, "issuer name too long"))
		return
	}
	draft, err := h.issuer.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeDraft(w, r, http.StatusOK, draft)
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	draft, err := h.issuer.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeDraft(w, r, http.StatusOK, draft)
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	draft, err := h.issuer.Back(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeDraft(w, r, http.StatusOK, draft)
}

func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	release, err := h.issuer.Publish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, release)
}
