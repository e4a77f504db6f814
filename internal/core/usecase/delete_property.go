package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"

	"github.com/google/uuid"
)

type DeletePropertyUseCase struct {
	storage port.PropertyStoragePort
	cache   port.ListingCachePort
}

func NewDeletePropertyUseCase(storage port.PropertyStoragePort, cache port.ListingCachePort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{storage: storage, cache: cache}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, actor domain.Claims, id uuid.UUID) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id.String(),
		"user_id":     actor.UserID.String(),
	})

	if _, err := loadEditable(ctx, uc.storage, actor, id, ucLogger); err != nil {
		return err
	}
	if err := uc.storage.Delete(ctx, id); err != nil {
		ucLogger.Error("Repository failed to delete property", err, nil)
		return internalError(err)
	}
	invalidateListings(ctx, uc.cache, ucLogger)

	ucLogger.Info("Use case finished: property deleted", nil)
	return nil
}
