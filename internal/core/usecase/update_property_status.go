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

// UpdatePropertyStatusUseCase - административная смена статуса и статуса оплаты.
// Проверка роли выполняется middleware.
type UpdatePropertyStatusUseCase struct {
	storage port.PropertyStoragePort
	cache   port.ListingCachePort
	now     func() time.Time
}

func NewUpdatePropertyStatusUseCase(storage port.PropertyStoragePort, cache port.ListingCachePort) *UpdatePropertyStatusUseCase {
	return &UpdatePropertyStatusUseCase{storage: storage, cache: cache, now: time.Now}
}

func (uc *UpdatePropertyStatusUseCase) Execute(ctx context.Context, id uuid.UUID, update domain.StatusUpdate) (*domain.PropertyRecord, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UpdatePropertyStatus",
		"property_id": id.String(),
	})

	if update.Status == nil && update.PaymentStatus == nil {
		return nil, domain.NewValidationError("status or paymentStatus is required", "status", "paymentStatus")
	}
	var invalid []string
	if update.Status != nil && !domain.IsValidStatus(*update.Status) {
		invalid = append(invalid, "status")
	}
	if update.PaymentStatus != nil && !domain.IsValidPaymentStatus(*update.PaymentStatus) {
		invalid = append(invalid, "paymentStatus")
	}
	if len(invalid) > 0 {
		return nil, domain.NewValidationError("invalid field values", invalid...)
	}

	record, err := uc.storage.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to load property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if record == nil {
		return nil, domain.ErrPropertyNotFound
	}

	if update.Status != nil {
		record.Status = *update.Status
	}
	if update.PaymentStatus != nil {
		record.PaymentStatus = *update.PaymentStatus
	}
	record.UpdatedAt = uc.now().UTC()
	record.SyncFlatAddress()

	if err := uc.storage.Update(ctx, record); err != nil {
		ucLogger.Error("Repository failed to update property status", err, nil)
		return nil, internalError(err)
	}
	invalidateListings(ctx, uc.cache, ucLogger)

	ucLogger.Info("Use case finished: property status changed", port.Fields{"status": record.Status, "payment_status": record.PaymentStatus})
	return record, nil
}
