package usecases_port

import (
	"addisnest-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// CreatePropertyUseCasePort возвращает created=false, если сработала защита от дубля
type CreatePropertyUseCasePort interface {
	Execute(ctx context.Context, ownerID uuid.UUID, payload map[string]any) (record *domain.PropertyRecord, created bool, err error)
}

type ListPropertiesUseCasePort interface {
	Execute(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, error)
}

type ListMyPropertiesUseCasePort interface {
	Execute(ctx context.Context, ownerID uuid.UUID, query domain.ListingQuery) (*domain.ListingPage, error)
}

type GetPropertyUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error)
}

type UpdatePropertyUseCasePort interface {
	Execute(ctx context.Context, actor domain.Claims, id uuid.UUID, payload map[string]any) (*domain.PropertyRecord, error)
}

type UpdatePropertyStatusUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, update domain.StatusUpdate) (*domain.PropertyRecord, error)
}

type DeletePropertyUseCasePort interface {
	Execute(ctx context.Context, actor domain.Claims, id uuid.UUID) error
}

type UploadImagesUseCasePort interface {
	Execute(ctx context.Context, ownerID uuid.UUID, files []domain.ImageUpload) ([]domain.PropertyImage, error)
}

type NotifyPendingListingUseCasePort interface {
	Execute(ctx context.Context, event domain.PropertyCreatedEvent) error
}
