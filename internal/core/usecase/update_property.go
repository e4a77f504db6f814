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

// UpdatePropertyUseCase - частичное обновление объявления владельцем или администратором.
type UpdatePropertyUseCase struct {
	storage port.PropertyStoragePort
	cache   port.ListingCachePort
	now     func() time.Time
}

func NewUpdatePropertyUseCase(storage port.PropertyStoragePort, cache port.ListingCachePort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{storage: storage, cache: cache, now: time.Now}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, actor domain.Claims, id uuid.UUID, payload map[string]any) (*domain.PropertyRecord, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id.String(),
		"user_id":     actor.UserID.String(),
	})
	ucLogger.Info("Use case started: updating property", nil)

	record, err := loadEditable(ctx, uc.storage, actor, id, ucLogger)
	if err != nil {
		return nil, err
	}

	if err := domain.ApplyPatch(record, payload, uc.now().UTC()); err != nil {
		ucLogger.Warn("Property patch rejected", port.Fields{"reason": err.Error()})
		return nil, err
	}

	if err := uc.storage.Update(ctx, record); err != nil {
		ucLogger.Error("Repository failed to update property", err, nil)
		return nil, internalError(err)
	}
	invalidateListings(ctx, uc.cache, ucLogger)

	ucLogger.Info("Use case finished: property updated", nil)
	return record, nil
}

// loadEditable загружает объявление и проверяет, что actor - владелец или администратор
func loadEditable(ctx context.Context, storage port.PropertyStoragePort, actor domain.Claims, id uuid.UUID, logger port.LoggerPort) (*domain.PropertyRecord, error) {
	record, err := storage.FindByID(ctx, id)
	if err != nil {
		logger.Error("Repository failed to load property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if record == nil {
		return nil, domain.ErrPropertyNotFound
	}
	if !actor.IsAdmin() && !record.IsOwnedBy(actor.UserID) {
		logger.Warn("Actor is neither owner nor admin", port.Fields{"owner_id": record.OwnerID.String()})
		return nil, domain.ErrForbidden
	}
	return record, nil
}
