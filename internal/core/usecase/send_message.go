package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SendMessageUseCase - сообщение от покупателя продавцу (или обратно), опционально по объявлению.
type SendMessageUseCase struct {
	messages   port.MessageRepositoryPort
	users      port.UserRepositoryPort
	properties port.PropertyStoragePort
	now        func() time.Time
}

func NewSendMessageUseCase(messages port.MessageRepositoryPort, users port.UserRepositoryPort, properties port.PropertyStoragePort) *SendMessageUseCase {
	return &SendMessageUseCase{messages: messages, users: users, properties: properties, now: time.Now}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, senderID, recipientID uuid.UUID, propertyID *uuid.UUID, body string) (*domain.Message, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":     "SendMessage",
		"sender_id":    senderID.String(),
		"recipient_id": recipientID.String(),
	})

	msg, err := domain.NewMessage(senderID, recipientID, propertyID, body, uc.now().UTC())
	if err != nil {
		return nil, err
	}

	recipient, err := uc.users.FindByID(ctx, recipientID)
	if err != nil {
		ucLogger.Error("Repository failed to load recipient", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if recipient == nil {
		return nil, domain.ErrUserNotFound
	}

	if propertyID != nil {
		property, err := uc.properties.FindByID(ctx, *propertyID)
		if err != nil {
			ucLogger.Error("Repository failed to load property", err, nil)
			return nil, fmt.Errorf("internal server error: %w", err)
		}
		if property == nil {
			return nil, domain.ErrPropertyNotFound
		}
	}

	if err := uc.messages.Create(ctx, msg); err != nil {
		ucLogger.Error("Repository failed to store message", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: message sent", port.Fields{"message_id": msg.ID.String()})
	return msg, nil
}
