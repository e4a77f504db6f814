package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ListPropertiesUseCase - публичный поиск объявлений с кэшированием страниц.
type ListPropertiesUseCase struct {
	storage port.PropertyStoragePort
	cache   port.ListingCachePort
}

func NewListPropertiesUseCase(storage port.PropertyStoragePort, cache port.ListingCachePort) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{storage: storage, cache: cache}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListProperties",
		"page":     query.Page,
		"limit":    query.Limit,
	})

	var cacheKey string
	if uc.cache != nil {
		page, key, err := uc.cache.Get(ctx, query)
		// при ошибке ключ может быть пустым, тогда страница не кэшируется
		cacheKey = key
		if err != nil {
			ucLogger.Warn("Listing cache read failed, falling back to storage", port.Fields{"reason": err.Error()})
		} else if page != nil {
			ucLogger.Debug("Listing served from cache", port.Fields{"total": page.Total})
			return page, nil
		}
	}

	page, err := uc.storage.List(ctx, query)
	if err != nil {
		ucLogger.Error("Repository failed to list properties", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	if cacheKey != "" {
		if err := uc.cache.Set(ctx, cacheKey, page); err != nil {
			ucLogger.Warn("Failed to store listing page in cache", port.Fields{"reason": err.Error()})
		}
	}

	ucLogger.Info("Use case finished: properties listed", port.Fields{"count": len(page.Records), "total": page.Total})
	return page, nil
}

// ListMyPropertiesUseCase - объявления текущего пользователя, без кэша.
type ListMyPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewListMyPropertiesUseCase(storage port.PropertyStoragePort) *ListMyPropertiesUseCase {
	return &ListMyPropertiesUseCase{storage: storage}
}

func (uc *ListMyPropertiesUseCase) Execute(ctx context.Context, ownerID uuid.UUID, query domain.ListingQuery) (*domain.ListingPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListMyProperties",
		"owner_id": ownerID.String(),
	})

	query.OwnerID = &ownerID
	page, err := uc.storage.List(ctx, query)
	if err != nil {
		ucLogger.Error("Repository failed to list owner properties", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return page, nil
}
