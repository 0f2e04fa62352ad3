package contactservice_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/service/contactservice"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) CreateContactMessage(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(domain.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) ListContactMessages(ctx context.Context, params domain.ListParams) (domain.ContactMessagePage, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.ContactMessagePage), args.Error(1)
}

func (m *MockContactRepository) GetContactMessage(ctx context.Context, id string) (domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) MarkContactMessageRead(ctx context.Context, id string) (domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) DeleteContactMessage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSubmit_Success(t *testing.T) {
	mockRepo := new(MockContactRepository)
	svc := contactservice.NewService(mockRepo, logger.NewLogger("debug"))

	expected := domain.ContactMessage{
		Name:    "Ann Smith",
		Email:   "ann@example.com",
		Subject: contactservice.DefaultSubject,
		Message: "Is the corner sofa available in green?",
	}
	mockRepo.On("CreateContactMessage", mock.Anything, expected).
		Return(domain.ContactMessage{ID: "m1", Name: expected.Name}, nil)

	created, err := svc.Submit(context.Background(), domain.ContactMessage{
		ID:      "client-supplied",
		Name:    "  Ann Smith ",
		Email:   "ann@example.com ",
		Message: "Is the corner sofa available in green?",
		IsRead:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, "m1", created.ID)
	mockRepo.AssertExpectations(t)
}

func TestSubmit_Validation(t *testing.T) {
	cases := map[string]domain.ContactMessage{
		"missing name":    {Email: "a@b.co", Message: "hi"},
		"missing email":   {Name: "A", Message: "hi"},
		"invalid email":   {Name: "A", Email: "Ann <a@b.co>", Message: "hi"},
		"missing message": {Name: "A", Email: "a@b.co"},
		"message too long": {
			Name: "A", Email: "a@b.co", Message: strings.Repeat("x", contactservice.MaxMessageLength+1),
		},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			mockRepo := new(MockContactRepository)
			svc := contactservice.NewService(mockRepo, logger.NewLogger("debug"))

			_, err := svc.Submit(context.Background(), msg)

			var validation *apperror.ValidationError
			assert.ErrorAs(t, err, &validation)
			mockRepo.AssertNotCalled(t, "CreateContactMessage", mock.Anything, mock.Anything)
		})
	}
}

func TestList_AppliesPagingDefaults(t *testing.T) {
	mockRepo := new(MockContactRepository)
	svc := contactservice.NewService(mockRepo, logger.NewLogger("debug"))

	mockRepo.On("ListContactMessages", mock.Anything, domain.ListParams{Page: 1, Limit: 100, Status: "unread"}).
		Return(domain.ContactMessagePage{}, nil)

	page, err := svc.List(context.Background(), domain.ListParams{Page: 0, Limit: 500, Status: " Unread "})

	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	mockRepo.AssertExpectations(t)

	_, err = svc.List(context.Background(), domain.ListParams{Status: "archived"})
	var validation *apperror.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestMarkReadAndDelete(t *testing.T) {
	mockRepo := new(MockContactRepository)
	svc := contactservice.NewService(mockRepo, logger.NewLogger("debug"))

	mockRepo.On("MarkContactMessageRead", mock.Anything, "m1").Return(domain.ContactMessage{ID: "m1", IsRead: true}, nil)
	mockRepo.On("DeleteContactMessage", mock.Anything, "m1").Return(nil)
	mockRepo.On("DeleteContactMessage", mock.Anything, "m2").Return(apperror.NewNotFoundError("m2"))

	msg, err := svc.MarkRead(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, msg.IsRead)

	assert.NoError(t, svc.Delete(context.Background(), "m1"))

	err = svc.Delete(context.Background(), "m2")
	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	err = svc.Delete(context.Background(), "")
	var validation *apperror.ValidationError
	assert.ErrorAs(t, err, &validation)
}
