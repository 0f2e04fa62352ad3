package sessionservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/pkg/token"
	"sofadeal/internal/service/sessionservice"
)

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Save(ctx context.Context, user domain.StaffUser) (domain.StaffUser, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.StaffUser), args.Error(1)
}

func (m *MockStaffRepository) FindByEmail(ctx context.Context, email string) (domain.StaffUser, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.StaffUser), args.Error(1)
}

func staffWithPassword(t *testing.T, password string) domain.StaffUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return domain.StaffUser{ID: "u1", Email: "admin@sofadeal.test", PasswordHash: string(hash), Role: domain.RoleAdmin}
}

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	tokens := token.NewService("secret", time.Hour)
	svc := sessionservice.NewService(mockRepo, tokens, logger.NewLogger("debug"))

	mockRepo.On("FindByEmail", mock.Anything, "admin@sofadeal.test").Return(staffWithPassword(t, "correct horse"), nil)

	session, err := svc.Login(context.Background(), domain.LoginRequest{Email: " Admin@SofaDeal.test", Password: "correct horse"})

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	claims, err := tokens.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_Failures(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	svc := sessionservice.NewService(mockRepo, token.NewService("secret", time.Hour), logger.NewLogger("debug"))
	ctx := context.Background()

	mockRepo.On("FindByEmail", mock.Anything, "admin@sofadeal.test").Return(staffWithPassword(t, "correct horse"), nil)
	mockRepo.On("FindByEmail", mock.Anything, "ghost@sofadeal.test").Return(domain.StaffUser{}, apperror.NewNotFoundError("ghost"))
	mockRepo.On("FindByEmail", mock.Anything, "db@sofadeal.test").Return(domain.StaffUser{}, apperror.NewDBError("boom", errors.New("conn reset")))

	var unauthorized *apperror.UnauthorizedError

	_, err := svc.Login(ctx, domain.LoginRequest{Email: "admin@sofadeal.test", Password: "wrong"})
	assert.ErrorAs(t, err, &unauthorized)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "ghost@sofadeal.test", Password: "whatever"})
	assert.ErrorAs(t, err, &unauthorized)

	_, err = svc.Login(ctx, domain.LoginRequest{})
	assert.ErrorAs(t, err, &unauthorized)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "db@sofadeal.test", Password: "whatever"})
	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestCreateStaff(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	svc := sessionservice.NewService(mockRepo, token.NewService("secret", time.Hour), logger.NewLogger("debug"))

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.StaffUser) bool {
		return u.Email == "editor@sofadeal.test" &&
			u.Role == domain.RoleEditor &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("long enough pw")) == nil
	})).Return(domain.StaffUser{ID: "u2", Email: "editor@sofadeal.test", Role: domain.RoleEditor}, nil)

	user, err := svc.CreateStaff(context.Background(), "Editor@SofaDeal.test", "long enough pw", domain.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	mockRepo.AssertExpectations(t)

	var validation *apperror.ValidationError
	_, err = svc.CreateStaff(context.Background(), "x@y.z", "short", domain.RoleAdmin)
	assert.ErrorAs(t, err, &validation)
	_, err = svc.CreateStaff(context.Background(), "x@y.z", "long enough pw", domain.UserRole("owner"))
	assert.ErrorAs(t, err, &validation)
}
