package rest

import (
	"addisnest-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// tokenTable - ValidateTokenUseCasePort поверх фиксированного набора токенов
type tokenTable map[string]*domain.Claims

func (t tokenTable) Execute(ctx context.Context, token string) (*domain.Claims, error) {
	claims, ok := t[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

type registerFunc func(ctx context.Context, input domain.RegistrationInput) (*domain.User, string, error)

func (f registerFunc) Execute(ctx context.Context, input domain.RegistrationInput) (*domain.User, string, error) {
	return f(ctx, input)
}

type loginFunc func(ctx context.Context, email, password string) (*domain.User, string, error)

func (f loginFunc) Execute(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f(ctx, email, password)
}

type requestOTPFunc func(ctx context.Context, channel, destination string) error

func (f requestOTPFunc) Execute(ctx context.Context, channel, destination string) error {
	return f(ctx, channel, destination)
}

type profileFunc func(ctx context.Context, userID uuid.UUID) (*domain.User, error)

func (f profileFunc) Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return f(ctx, userID)
}

type sendMessageFunc func(ctx context.Context, senderID, recipientID uuid.UUID, propertyID *uuid.UUID, body string) (*domain.Message, error)

func (f sendMessageFunc) Execute(ctx context.Context, senderID, recipientID uuid.UUID, propertyID *uuid.UUID, body string) (*domain.Message, error) {
	return f(ctx, senderID, recipientID, propertyID, body)
}

type dashboardFunc func(ctx context.Context) (*domain.DashboardStats, error)

func (f dashboardFunc) Execute(ctx context.Context) (*domain.DashboardStats, error) {
	return f(ctx)
}

type listPartnershipsFunc func(ctx context.Context, filter domain.PartnershipFilter) ([]domain.PartnershipRequest, int64, error)

func (f listPartnershipsFunc) Execute(ctx context.Context, filter domain.PartnershipFilter) ([]domain.PartnershipRequest, int64, error) {
	return f(ctx, filter)
}

type uploadFunc func(ctx context.Context, ownerID uuid.UUID, files []domain.ImageUpload) ([]domain.PropertyImage, error)

func (f uploadFunc) Execute(ctx context.Context, ownerID uuid.UUID, files []domain.ImageUpload) ([]domain.PropertyImage, error) {
	return f(ctx, ownerID, files)
}
