package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CreatePropertyUseCase struct {
	storage         port.PropertyStoragePort
	cache           port.ListingCachePort   // может быть nil
	events          port.PropertyEventsPort // может быть nil
	duplicateWindow time.Duration
	now             func() time.Time
}

func NewCreatePropertyUseCase(
	storage port.PropertyStoragePort,
	cache port.ListingCachePort,
	events port.PropertyEventsPort,
	duplicateWindow time.Duration,
) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{
		storage:         storage,
		cache:           cache,
		events:          events,
		duplicateWindow: duplicateWindow,
		now:             time.Now,
	}
}

// Execute создает объявление. Если тот же владелец только что отправил такое же объявление,
// возвращается уже сохраненная запись и created=false.
func (uc *CreatePropertyUseCase) Execute(ctx context.Context, ownerID uuid.UUID, payload map[string]any) (*domain.PropertyRecord, bool, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "CreateProperty",
		"owner_id": ownerID.String(),
	})
	ucLogger.Info("Use case started: creating property", nil)

	now := uc.now().UTC()
	record, err := domain.NewPropertyFromPayload(ownerID, payload, now)
	if err != nil {
		ucLogger.Warn("Property payload rejected", port.Fields{"reason": err.Error()})
		return nil, false, err
	}

	duplicate, err := uc.storage.FindRecentDuplicate(ctx, domain.NewDuplicateProbe(record, now.Add(-uc.duplicateWindow)))
	if err != nil {
		ucLogger.Error("Duplicate lookup failed, aborting create", err, nil)
		return nil, false, fmt.Errorf("internal server error: %w", err)
	}
	if duplicate != nil {
		duplicate.SyncFlatAddress()
		ucLogger.Info("Use case finished: duplicate submission, returning existing record", port.Fields{"property_id": duplicate.ID.String()})
		return duplicate, false, nil
	}

	if err := uc.storage.Create(ctx, record); err != nil {
		ucLogger.Error("Repository failed to create property", err, nil)
		return nil, false, fmt.Errorf("internal server error: %w", err)
	}
	ucLogger = ucLogger.WithFields(port.Fields{"property_id": record.ID.String()})

	invalidateListings(ctx, uc.cache, ucLogger)
	if uc.events != nil {
		if err := uc.events.PublishPropertyCreated(ctx, domain.NewPropertyCreatedEvent(record)); err != nil {
			ucLogger.Warn("Property created but event was not published", port.Fields{"reason": err.Error()})
		}
	}

	ucLogger.Info("Use case finished: property created", port.Fields{"status": record.Status, "promotion_type": record.PromotionType})
	return record, true, nil
}

// invalidateListings сбрасывает кэш выдачи. Ошибка кэша не должна ломать запись.
func invalidateListings(ctx context.Context, cache port.ListingCachePort, logger port.LoggerPort) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate listing cache", port.Fields{"reason": err.Error()})
	}
}

// internalError оборачивает ошибку хранилища, доменные ошибки пропускает как есть
func internalError(err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) || errors.Is(err, domain.ErrPropertyNotFound) {
		return err
	}
	return fmt.Errorf("internal server error: %w", err)
}
