package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	repository "github.com/hotelease/backend/internal/database/postgres"
	"github.com/hotelease/backend/internal/entity"
)

// SubmitMessageRequest представляет сообщение из формы обратной связи
type SubmitMessageRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,min=2,max=200"`
	Message string `json:"message" binding:"required,min=2,max=5000"`
}

type contactService struct {
	contactRepo repository.ContactRepository
	notifier    ConciergeNotifier
}

// NewContactService создает новый экземпляр ContactService
func NewContactService(contactRepo repository.ContactRepository, notifier ConciergeNotifier) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

func (s *contactService) SubmitMessage(ctx context.Context, req *SubmitMessageRequest) (*entity.ContactMessage, error) {
	msg := &entity.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	if s.notifier != nil {
		text := fmt.Sprintf("Новое сообщение от %s (%s): %s", msg.Name, msg.Email, msg.Subject)
		if err := s.notifier.Notify(text); err != nil {
			logrus.Warnf("Failed to notify about contact message %d: %v", msg.ID, err)
		}
	}

	logrus.Infof("Contact message received: from=%s, subject=%s", msg.Email, msg.Subject)
	return msg, nil
}

func (s *contactService) GetMessages(ctx context.Context, unhandledOnly bool) ([]*entity.ContactMessage, error) {
	msgs, err := s.contactRepo.GetAll(ctx, unhandledOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	return msgs, nil
}

func (s *contactService) MarkHandled(ctx context.Context, id int64) error {
	if err := s.contactRepo.MarkHandled(ctx, id); err != nil {
		return fmt.Errorf("failed to mark message handled: %w", err)
	}
	return nil
}
