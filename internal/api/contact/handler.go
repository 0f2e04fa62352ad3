package contact

import (
	"context"
	"net/http"
	"strconv"

	"sofadeal/internal/api/response"
	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/logger"
)

// Service manages contact-form messages.
type Service interface {
	Submit(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error)
	List(ctx context.Context, params domain.ListParams) (domain.ContactMessagePage, error)
	Get(ctx context.Context, id string) (domain.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	Service Service
	Logger  logger.Logger
}

func NewHandler(svc Service, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// SubmitRequest is the public contact form.
type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Write(w, r, h.Logger, data, err, successStatus)
}

// SubmitHandler handles POST /v1/contact.
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Contact form"
// @Success 201 {object} domain.ContactMessage
// @Failure 400 {object} domain.ErrorResponse
// @Failure 502 {object} domain.ErrorResponse
// @Router /contact [post]
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := response.Decode(w, r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	msg, err := h.Service.Submit(r.Context(), domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	h.handleServiceResponse(w, r, msg, err, http.StatusCreated)
}

// ListHandler handles GET /v1/admin/contact-messages.
// @Summary List contact messages
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param status query string false "read or unread"
// @Success 200 {object} domain.ContactMessagePage
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Router /admin/contact-messages [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), ListParams(r))
	h.handleServiceResponse(w, r, page, err, http.StatusOK)
}

// GetHandler handles GET /v1/admin/contact-messages/{id}.
// @Summary Get a contact message
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message id"
// @Success 200 {object} domain.ContactMessage
// @Failure 404 {object} domain.ErrorResponse
// @Router /admin/contact-messages/{id} [get]
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Service.Get(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, msg, err, http.StatusOK)
}

// MarkReadHandler handles PATCH /v1/admin/contact-messages/{id}.
// @Summary Mark a contact message as read
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message id"
// @Success 200 {object} domain.ContactMessage
// @Failure 404 {object} domain.ErrorResponse
// @Router /admin/contact-messages/{id} [patch]
func (h *Handler) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Service.MarkRead(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, msg, err, http.StatusOK)
}

// DeleteHandler handles DELETE /v1/admin/contact-messages/{id}.
// @Summary Delete a contact message
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Message id"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /admin/contact-messages/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// ListParams reads page, limit and status from the query string. Values that
// are not integers are left at zero for the service defaults.
func ListParams(r *http.Request) domain.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return domain.ListParams{Page: page, Limit: limit, Status: q.Get("status")}
}
