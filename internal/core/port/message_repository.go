package port

import (
	"addisnest-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

type MessageRepositoryPort interface {
	Create(ctx context.Context, msg *domain.Message) error
	// ListConversations возвращает по одной сводке на собеседника, свежие сверху.
	ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.ConversationSummary, error)
	// Thread - переписка двух пользователей, новые сообщения первыми.
	Thread(ctx context.Context, userID, peerID uuid.UUID, limit, offset int) ([]domain.Message, error)
	// MarkRead отмечает прочитанными входящие от peerID и возвращает их количество.
	MarkRead(ctx context.Context, userID, peerID uuid.UUID) (int64, error)
}

type PartnershipRepositoryPort interface {
	Create(ctx context.Context, req *domain.PartnershipRequest) error
	List(ctx context.Context, filter domain.PartnershipFilter) ([]domain.PartnershipRequest, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.PartnershipRequest, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
