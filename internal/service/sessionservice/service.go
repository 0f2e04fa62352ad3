package sessionservice

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/pkg/token"
)

// MinPasswordLength is the shortest password accepted for a staff account.
const MinPasswordLength = 10

// StaffRepository stores back-office accounts.
type StaffRepository interface {
	Save(ctx context.Context, user domain.StaffUser) (domain.StaffUser, error)
	FindByEmail(ctx context.Context, email string) (domain.StaffUser, error)
}

// Service signs staff in and creates staff accounts.
type Service struct {
	repo     StaffRepository
	tokenSvc token.TokenService
	logger   logger.Logger
}

// NewService creates the session service.
func NewService(repo StaffRepository, tokenSvc token.TokenService, logger logger.Logger) *Service {
	return &Service{repo: repo, tokenSvc: tokenSvc, logger: logger}
}

// CreateStaff hashes the password and stores a new account.
func (s *Service) CreateStaff(ctx context.Context, email, password string, role domain.UserRole) (domain.StaffUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.StaffUser{}, apperror.NewValidationError("a valid email is required")
	}
	if len(password) < MinPasswordLength {
		return domain.StaffUser{}, apperror.NewValidationError("password is too short")
	}
	if !role.Valid() {
		return domain.StaffUser{}, apperror.NewValidationError("role must be 'admin' or 'editor'")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.StaffUser{}, apperror.NewInternalError("failed to hash password", err)
	}

	user, err := s.repo.Save(ctx, domain.StaffUser{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return domain.StaffUser{}, err
	}

	s.logger.Info("Staff account created.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return user, nil
}

// Login checks the credentials and issues a session token.
// Unknown emails and wrong passwords give the same UnauthorizedError.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return domain.Session{}, apperror.NewUnauthorizedError("email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Session{}, apperror.NewUnauthorizedError("invalid credentials")
		}
		return domain.Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Debug("Rejected staff sign-in.", map[string]interface{}{"user_id": user.ID})
		return domain.Session{}, apperror.NewUnauthorizedError("invalid credentials")
	}

	signed, expiresAt, err := s.tokenSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return domain.Session{}, apperror.NewInternalError("failed to issue session token", err)
	}

	s.logger.Info("Staff signed in.", map[string]interface{}{"user_id": user.ID})
	return domain.Session{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}
