package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GetPropertyUseCase отдает объявление и засчитывает просмотр.
type GetPropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetPropertyUseCase(storage port.PropertyStoragePort) *GetPropertyUseCase {
	return &GetPropertyUseCase{storage: storage}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "GetProperty",
		"property_id": id.String(),
	})

	record, err := uc.storage.IncrementViews(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to load property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if record == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}
	record.SyncFlatAddress()
	return record, nil
}
