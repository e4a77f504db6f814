package usecases_port

import (
	"addisnest-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

type SendMessageUseCasePort interface {
	Execute(ctx context.Context, senderID, recipientID uuid.UUID, propertyID *uuid.UUID, body string) (*domain.Message, error)
}

type ListConversationsUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) ([]domain.ConversationSummary, error)
}

type GetThreadUseCasePort interface {
	Execute(ctx context.Context, userID, peerID uuid.UUID, page, limit int) ([]domain.Message, error)
}

type MarkThreadReadUseCasePort interface {
	Execute(ctx context.Context, userID, peerID uuid.UUID) (int64, error)
}
