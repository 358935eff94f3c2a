package service

import (
	"context"
	"strings"

	"warbler/internal/models"
	"warbler/internal/observability"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

type MessageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// CreateMessage validates and stores a new message for the given author.
func (s *MessageService) CreateMessage(ctx context.Context, userID uint, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if err := validation.ValidateMessageText(text); err != nil {
		return nil, err
	}

	message := &models.Message{
		Text:   text,
		UserID: userID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	observability.MessagesTotal.WithLabelValues("create").Inc()
	return message, nil
}

func (s *MessageService) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id)
}

// DeleteMessage removes a message. Only the author may delete it.
func (s *MessageService) DeleteMessage(ctx context.Context, messageID, requesterID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID != requesterID {
		return models.NewForbiddenError("You can only delete your own messages")
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	observability.MessagesTotal.WithLabelValues("delete").Inc()
	return nil
}

func (s *MessageService) ListForUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.messageRepo.ListForUser(ctx, userID, limit)
}

// Feed returns the home timeline for a user: their own messages plus those of
// everyone they follow, newest first.
func (s *MessageService) Feed(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.messageRepo.Feed(ctx, userID, limit)
}
