package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sofadeal/internal/api/session"
	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Session), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	expires := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := new(MockSessionService)
	svc.On("Login", mock.Anything, domain.LoginRequest{Email: "ops@sofadeal.com", Password: "correct-horse"}).
		Return(domain.Session{Token: "tok", ExpiresAt: expires, User: domain.StaffUser{ID: "u1", Role: domain.RoleAdmin}}, nil)
	svc.On("Login", mock.Anything, mock.Anything).
		Return(domain.Session{}, apperror.NewUnauthorizedError("invalid credentials"))
	h := session.NewHandler(svc, logger.NewLogger("error"))

	rec := httptest.NewRecorder()
	h.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/login",
		strings.NewReader(`{"email":"ops@sofadeal.com","password":"correct-horse"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "tok", got.Token)
	assert.True(t, got.ExpiresAt.Equal(expires))
	assert.NotContains(t, rec.Body.String(), "password")

	rec = httptest.NewRecorder()
	h.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/login",
		strings.NewReader(`{"email":"ops@sofadeal.com","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(`nope`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
