package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"

	"github.com/google/uuid"
)

const defaultThreadLimit = 20

type ListConversationsUseCase struct {
	messages port.MessageRepositoryPort
}

func NewListConversationsUseCase(messages port.MessageRepositoryPort) *ListConversationsUseCase {
	return &ListConversationsUseCase{messages: messages}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]domain.ConversationSummary, error) {
	conversations, err := uc.messages.ListConversations(ctx, userID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to list conversations", err, port.Fields{"use_case": "ListConversations"})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if conversations == nil {
		conversations = []domain.ConversationSummary{}
	}
	return conversations, nil
}

type GetThreadUseCase struct {
	messages port.MessageRepositoryPort
}

func NewGetThreadUseCase(messages port.MessageRepositoryPort) *GetThreadUseCase {
	return &GetThreadUseCase{messages: messages}
}

func (uc *GetThreadUseCase) Execute(ctx context.Context, userID, peerID uuid.UUID, page, limit int) ([]domain.Message, error) {
	_, limit, offset := normalizePage(page, limit, defaultThreadLimit)

	thread, err := uc.messages.Thread(ctx, userID, peerID, limit, offset)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to load thread", err, port.Fields{"use_case": "GetThread"})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if thread == nil {
		thread = []domain.Message{}
	}
	return thread, nil
}

type MarkThreadReadUseCase struct {
	messages port.MessageRepositoryPort
}

func NewMarkThreadReadUseCase(messages port.MessageRepositoryPort) *MarkThreadReadUseCase {
	return &MarkThreadReadUseCase{messages: messages}
}

func (uc *MarkThreadReadUseCase) Execute(ctx context.Context, userID, peerID uuid.UUID) (int64, error) {
	updated, err := uc.messages.MarkRead(ctx, userID, peerID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to mark thread read", err, port.Fields{"use_case": "MarkThreadRead"})
		return 0, fmt.Errorf("internal server error: %w", err)
	}
	return updated, nil
}
