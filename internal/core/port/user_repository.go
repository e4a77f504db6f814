package port

import (
	"addisnest-service/internal/core/domain"
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepositoryPort определяет методы для работы с хранилищем пользователей.
// Find* возвращают (nil, nil), если пользователь не найден.
type UserRepositoryPort interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
	Stats(ctx context.Context) (*domain.UserStats, error)
}

// OTPRepositoryPort хранит выданные одноразовые коды.
type OTPRepositoryPort interface {
	// Save заменяет предыдущий код для того же адреса.
	Save(ctx context.Context, code *domain.OTPCode) error
	FindLatest(ctx context.Context, destination string) (*domain.OTPCode, error)
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
