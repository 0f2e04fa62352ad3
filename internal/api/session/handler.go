package session

import (
	"context"
	"net/http"

	"sofadeal/internal/api/response"
	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/logger"
)

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error)
}

// Handler signs staff users in.
type Handler struct {
	Service Service
	Logger  logger.Logger
}

func NewHandler(svc Service, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// LoginHandler handles POST /v1/login.
// @Summary Staff sign-in
// @Description Returns a bearer token for the admin endpoints.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.Session
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := response.Decode(w, r, &req, false); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	session, err := h.Service.Login(r.Context(), req)
	response.Write(w, r, h.Logger, session, err, http.StatusOK)
}
