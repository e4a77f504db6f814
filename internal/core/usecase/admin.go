package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
	"time"
)

// DashboardStatsUseCase собирает сводку для панели администратора из всех хранилищ.
type DashboardStatsUseCase struct {
	properties   port.PropertyStoragePort
	users        port.UserRepositoryPort
	partnerships port.PartnershipRepositoryPort
	now          func() time.Time
}

func NewDashboardStatsUseCase(properties port.PropertyStoragePort, users port.UserRepositoryPort, partnerships port.PartnershipRepositoryPort) *DashboardStatsUseCase {
	return &DashboardStatsUseCase{properties: properties, users: users, partnerships: partnerships, now: time.Now}
}

func (uc *DashboardStatsUseCase) Execute(ctx context.Context) (*domain.DashboardStats, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "DashboardStats"})

	propertyStats, err := uc.properties.Stats(ctx)
	if err != nil {
		ucLogger.Error("Failed to aggregate property stats", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	userStats, err := uc.users.Stats(ctx)
	if err != nil {
		ucLogger.Error("Failed to aggregate user stats", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	newRequests, err := uc.partnerships.CountByStatus(ctx, domain.PartnershipNew)
	if err != nil {
		ucLogger.Error("Failed to count partnership requests", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	return &domain.DashboardStats{
		Properties:             *propertyStats,
		Users:                  *userStats,
		NewPartnershipRequests: newRequests,
		GeneratedAt:            uc.now().UTC(),
	}, nil
}

type ListUsersUseCase struct {
	users port.UserRepositoryPort
}

func NewListUsersUseCase(users port.UserRepositoryPort) *ListUsersUseCase {
	return &ListUsersUseCase{users: users}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, page, limit int) ([]domain.User, int64, error) {
	_, limit, offset := normalizePage(page, limit, domain.DefaultLimit)

	users, total, err := uc.users.List(ctx, limit, offset)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to list users", err, port.Fields{"use_case": "ListUsers"})
		return nil, 0, fmt.Errorf("internal server error: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, total, nil
}
