package searchadmin

import (
	"context"
	"net/http"
	"time"

	"sofadeal/internal/api/response"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

// Index is the in-memory search index.
type Index interface {
	Refresh(ctx context.Context) (int, error)
	Stats() (int, time.Time, bool)
}

type Handler struct {
	Index  Index
	Logger logger.Logger
}

func NewHandler(index Index, log logger.Logger) *Handler {
	return &Handler{Index: index, Logger: log}
}

// Status describes the loaded index.
type Status struct {
	Loaded   bool       `json:"loaded"`
	Products int        `json:"products"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
}

func (h *Handler) status() Status {
	count, at, loaded := h.Index.Stats()
	st := Status{Loaded: loaded, Products: count}
	if loaded {
		st.LoadedAt = &at
	}
	return st
}

// StatusHandler handles GET /v1/admin/search-index.
// @Summary Search index status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Status
// @Router /admin/search-index [get]
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	response.Write(w, r, h.Logger, h.status(), nil, http.StatusOK)
}

// RefreshHandler handles POST /v1/admin/search-index/refresh.
// @Summary Reload the search index
// @Description Reloads the snapshots written by the indexer. The previous index stays in place when loading fails.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Status
// @Failure 500 {object} domain.ErrorResponse
// @Router /admin/search-index/refresh [post]
func (h *Handler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Index.Refresh(r.Context()); err != nil {
		response.Write(w, r, h.Logger, nil, apperror.NewInternalError("failed to refresh search index", err), http.StatusOK)
		return
	}
	response.Write(w, r, h.Logger, h.status(), nil, http.StatusOK)
}
