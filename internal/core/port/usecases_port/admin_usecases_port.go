package usecases_port

import (
	"addisnest-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

type SubmitPartnershipUseCasePort interface {
	Execute(ctx context.Context, input domain.PartnershipInput) (*domain.PartnershipRequest, error)
}

type ListPartnershipsUseCasePort interface {
	Execute(ctx context.Context, filter domain.PartnershipFilter) ([]domain.PartnershipRequest, int64, error)
}

type UpdatePartnershipStatusUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, status string) (*domain.PartnershipRequest, error)
}

type DashboardStatsUseCasePort interface {
	Execute(ctx context.Context) (*domain.DashboardStats, error)
}

type ListUsersUseCasePort interface {
	Execute(ctx context.Context, page, limit int) ([]domain.User, int64, error)
}
