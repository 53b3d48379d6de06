// Package handler exposes catalog reads over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"release-gateway/internal/catalog"
	"release-gateway/pkg/platform/httputil"
)

// Service defines the catalog operations the handler depends on.
type Service interface {
	Search(ctx context.Context, q catalog.Query) []catalog.Release
	Get(ctx context.Context, id string) (catalog.Release, error)
	Stats(ctx context.Context) catalog.Stats
}

type Handler struct {
	catalog Service
	log     *slog.Logger
}

func New(service Service, log *slog.Logger) *Handler {
	return &Handler{catalog: service, log: log}
}

// Register registers the catalog routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/releases", h.handleSearch)
	r.Get("/releases/stats", h.handleStats)
	r.Get("/releases/{id}", h.handleGet)
}

type searchResponse struct {
	Releases []catalog.Release `json:"releases"`
	Count    int               `json:"count"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := catalog.Query{Text: params.Get("q")}

	if raw := params.Get("status"); raw != "" {
		status, err := catalog.ParseReleaseStatus(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		q.Status = status
	}
	if raw := params.Get("type"); raw != "" {
		assetType, err := catalog.ParseAssetType(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		q.AssetType = assetType
	}
	sortKey, err := catalog.ParseSortKey(params.Get("sort"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	q.Sort = sortKey

	releases := h.catalog.Search(r.Context(), q)
	if releases == nil {
		releases = []catalog.Release{}
	}
	httputil.WriteJSON(w, http.StatusOK, searchResponse{Releases: releases, Count: len(releases)})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.catalog.Stats(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	release, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, release)
}
