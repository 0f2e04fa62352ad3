package contact_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sofadeal/internal/api/contact"
	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(domain.ContactMessage), args.Error(1)
}

func (m *MockContactService) List(ctx context.Context, params domain.ListParams) (domain.ContactMessagePage, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.ContactMessagePage), args.Error(1)
}

func (m *MockContactService) Get(ctx context.Context, id string) (domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ContactMessage), args.Error(1)
}

func (m *MockContactService) MarkRead(ctx context.Context, id string) (domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ContactMessage), args.Error(1)
}

func (m *MockContactService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newMux(svc contact.Service) *http.ServeMux {
	h := contact.NewHandler(svc, logger.NewLogger("error"))
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/contact", h.SubmitHandler)
	mux.HandleFunc("GET /v1/admin/contact-messages", h.ListHandler)
	mux.HandleFunc("GET /v1/admin/contact-messages/{id}", h.GetHandler)
	mux.HandleFunc("PATCH /v1/admin/contact-messages/{id}", h.MarkReadHandler)
	mux.HandleFunc("DELETE /v1/admin/contact-messages/{id}", h.DeleteHandler)
	return mux
}

func TestSubmitHandler(t *testing.T) {
	svc := new(MockContactService)
	svc.On("Submit", mock.Anything, domain.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "Hi"}).
		Return(domain.ContactMessage{ID: "m1", Name: "Ana"}, nil)

	rec := httptest.NewRecorder()
	newMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/contact",
		strings.NewReader(`{"name":"Ana","email":"ana@example.com","message":"Hi","is_read":true}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.ContactMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "m1", got.ID)
	svc.AssertExpectations(t)
}

func TestSubmitHandler_ValidationError(t *testing.T) {
	svc := new(MockContactService)
	svc.On("Submit", mock.Anything, mock.Anything).Return(domain.ContactMessage{}, apperror.NewValidationError("email is invalid"))

	rec := httptest.NewRecorder()
	newMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(`{"name":"Ana"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListHandler_ReadsQuery(t *testing.T) {
	svc := new(MockContactService)
	svc.On("List", mock.Anything, domain.ListParams{Page: 2, Limit: 0, Status: "unread"}).
		Return(domain.ContactMessagePage{Items: []domain.ContactMessage{}}, nil)

	rec := httptest.NewRecorder()
	newMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/contact-messages?page=2&limit=x&status=unread", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestMessageByID(t *testing.T) {
	svc := new(MockContactService)
	svc.On("Get", mock.Anything, "m1").Return(domain.ContactMessage{ID: "m1"}, nil)
	svc.On("MarkRead", mock.Anything, "m1").Return(domain.ContactMessage{ID: "m1", IsRead: true}, nil)
	svc.On("Delete", mock.Anything, "m1").Return(nil)
	svc.On("Delete", mock.Anything, "gone").Return(apperror.NewNotFoundError("contact message gone not found"))
	mux := newMux(svc)

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/v1/admin/contact-messages/m1", http.StatusOK},
		{http.MethodPatch, "/v1/admin/contact-messages/m1", http.StatusOK},
		{http.MethodDelete, "/v1/admin/contact-messages/m1", http.StatusNoContent},
		{http.MethodDelete, "/v1/admin/contact-messages/gone", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.want, rec.Code, tc.method+" "+tc.path)
	}
	svc.AssertExpectations(t)
}
