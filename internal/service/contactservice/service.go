package contactservice

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

const (
	DefaultLimit     = 10
	MaxLimit         = 100
	MaxMessageLength = 5000
	DefaultSubject   = "General enquiry"
)

// ContactRepository is the remote contact-message API.
type ContactRepository interface {
	CreateContactMessage(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error)
	ListContactMessages(ctx context.Context, params domain.ListParams) (domain.ContactMessagePage, error)
	GetContactMessage(ctx context.Context, id string) (domain.ContactMessage, error)
	MarkContactMessageRead(ctx context.Context, id string) (domain.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id string) error
}

// Service validates contact messages and forwards them to the remote API.
type Service struct {
	repo   ContactRepository
	logger logger.Logger
}

// NewService creates the contact service.
func NewService(repo ContactRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Submit validates and sends a message from the public contact form.
func (s *Service) Submit(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := validate(msg); err != nil {
		s.logger.Debug("Contact message rejected.", map[string]interface{}{"error": err.Error()})
		return domain.ContactMessage{}, err
	}
	if msg.Subject == "" {
		msg.Subject = DefaultSubject
	}
	msg.ID = ""
	msg.IsRead = false

	created, err := s.repo.CreateContactMessage(ctx, msg)
	if err != nil {
		s.logger.Error("Failed to forward contact message.", err)
		return domain.ContactMessage{}, err
	}

	s.logger.Info("Contact message submitted.", map[string]interface{}{"id": created.ID})
	return created, nil
}

// List returns one page of messages. status may be "", "read" or "unread".
func (s *Service) List(ctx context.Context, params domain.ListParams) (domain.ContactMessagePage, error) {
	params = normalize(params)
	switch params.Status {
	case "", "read", "unread":
	default:
		return domain.ContactMessagePage{}, apperror.NewValidationError("status must be 'read' or 'unread'")
	}

	page, err := s.repo.ListContactMessages(ctx, params)
	if err != nil {
		return domain.ContactMessagePage{}, err
	}
	if page.Items == nil {
		page.Items = []domain.ContactMessage{}
	}
	return page, nil
}

// Get returns one message.
func (s *Service) Get(ctx context.Context, id string) (domain.ContactMessage, error) {
	if err := validateID(id); err != nil {
		return domain.ContactMessage{}, err
	}
	return s.repo.GetContactMessage(ctx, id)
}

// MarkRead flags a message as read.
func (s *Service) MarkRead(ctx context.Context, id string) (domain.ContactMessage, error) {
	if err := validateID(id); err != nil {
		return domain.ContactMessage{}, err
	}
	msg, err := s.repo.MarkContactMessageRead(ctx, id)
	if err != nil {
		return domain.ContactMessage{}, err
	}
	s.logger.Info("Contact message marked as read.", map[string]interface{}{"id": id})
	return msg, nil
}

// Delete removes a message.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.DeleteContactMessage(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Contact message deleted.", map[string]interface{}{"id": id})
	return nil
}

func validate(msg domain.ContactMessage) error {
	if msg.Name == "" {
		return apperror.NewValidationError("name is required")
	}
	if msg.Email == "" {
		return apperror.NewValidationError("email is required")
	}
	if addr, err := mail.ParseAddress(msg.Email); err != nil || addr.Address != msg.Email {
		return apperror.NewValidationError("email is not a valid address")
	}
	if msg.Message == "" {
		return apperror.NewValidationError("message is required")
	}
	if utf8.RuneCountInString(msg.Message) > MaxMessageLength {
		return apperror.NewValidationError("message is too long")
	}
	return nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		return apperror.NewValidationError("message id is required")
	}
	return nil
}

// normalize applies the paging defaults shared by the back-office lists.
func normalize(params domain.ListParams) domain.ListParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	params.Status = strings.ToLower(strings.TrimSpace(params.Status))
	return params
}
