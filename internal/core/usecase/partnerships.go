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

// SubmitPartnershipUseCase сохраняет заявку с публичной формы и уведомляет команду.
type SubmitPartnershipUseCase struct {
	repo      port.PartnershipRepositoryPort
	email     port.EmailSenderPort // nil - без уведомления
	teamEmail string
	now       func() time.Time
}

func NewSubmitPartnershipUseCase(repo port.PartnershipRepositoryPort, email port.EmailSenderPort, teamEmail string) *SubmitPartnershipUseCase {
	return &SubmitPartnershipUseCase{repo: repo, email: email, teamEmail: teamEmail, now: time.Now}
}

func (uc *SubmitPartnershipUseCase) Execute(ctx context.Context, input domain.PartnershipInput) (*domain.PartnershipRequest, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SubmitPartnership",
		"company":  input.CompanyName,
	})

	req := domain.NewPartnershipRequest(input, uc.now().UTC())
	if err := uc.repo.Create(ctx, req); err != nil {
		ucLogger.Error("Repository failed to store partnership request", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	if uc.email != nil && uc.teamEmail != "" {
		err := uc.email.SendEmail(ctx, port.EmailMessage{
			ToEmail:   uc.teamEmail,
			Subject:   fmt.Sprintf("New partnership request: %s", req.CompanyName),
			PlainText: fmt.Sprintf("Company: %s\nContact: %s <%s> %s\nType: %s\n\n%s",
				req.CompanyName, req.ContactName, req.Email, req.Phone, req.PartnershipType, req.Message),
		})
		if err != nil {
			ucLogger.Warn("Partnership request stored but team was not notified", port.Fields{"reason": err.Error()})
		}
	}

	ucLogger.Info("Use case finished: partnership request stored", port.Fields{"request_id": req.ID.String()})
	return req, nil
}

type ListPartnershipsUseCase struct {
	repo port.PartnershipRepositoryPort
}

func NewListPartnershipsUseCase(repo port.PartnershipRepositoryPort) *ListPartnershipsUseCase {
	return &ListPartnershipsUseCase{repo: repo}
}

func (uc *ListPartnershipsUseCase) Execute(ctx context.Context, filter domain.PartnershipFilter) ([]domain.PartnershipRequest, int64, error) {
	if filter.Status != "" && !domain.IsValidPartnershipStatus(filter.Status) {
		return nil, 0, domain.NewValidationError("invalid field values", "status")
	}
	if filter.Limit < 1 {
		filter.Limit = domain.DefaultLimit
	}
	if filter.Limit > domain.MaxLimit {
		filter.Limit = domain.MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to list partnership requests", err, port.Fields{"use_case": "ListPartnerships"})
		return nil, 0, fmt.Errorf("internal server error: %w", err)
	}
	if items == nil {
		items = []domain.PartnershipRequest{}
	}
	return items, total, nil
}

type UpdatePartnershipStatusUseCase struct {
	repo port.PartnershipRepositoryPort
}

func NewUpdatePartnershipStatusUseCase(repo port.PartnershipRepositoryPort) *UpdatePartnershipStatusUseCase {
	return &UpdatePartnershipStatusUseCase{repo: repo}
}

func (uc *UpdatePartnershipStatusUseCase) Execute(ctx context.Context, id uuid.UUID, status string) (*domain.PartnershipRequest, error) {
	if !domain.IsValidPartnershipStatus(status) {
		return nil, domain.NewValidationError("invalid field values", "status")
	}

	req, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to update partnership request", err, port.Fields{"use_case": "UpdatePartnershipStatus"})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if req == nil {
		return nil, domain.ErrPartnershipNotFound
	}
	return req, nil
}
