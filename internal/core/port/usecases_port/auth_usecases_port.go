package usecases_port

import (
	"addisnest-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, input domain.RegistrationInput) (*domain.User, string, error) // пользователь и JWT
}

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.User, string, error)
}

type RequestOTPUseCasePort interface {
	Execute(ctx context.Context, channel, destination string) error
}

type VerifyOTPUseCasePort interface {
	Execute(ctx context.Context, destination, code string) (*domain.User, string, error)
}

type GoogleLoginUseCasePort interface {
	Execute(ctx context.Context, idToken string) (*domain.User, string, error)
}

type GetProfileUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type ValidateTokenUseCasePort interface {
	Execute(ctx context.Context, tokenString string) (*domain.Claims, error)
}

// CleanupOTPUseCasePort удаляет истекшие коды и возвращает их количество
type CleanupOTPUseCasePort interface {
	Execute(ctx context.Context) (int64, error)
}
