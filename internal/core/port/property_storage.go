package port

import (
	"addisnest-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// PropertyStoragePort - хранилище объявлений. Реализации: postgres, mongo, memory.
// Методы поиска возвращают (nil, nil), если запись не найдена.
type PropertyStoragePort interface {
	Create(ctx context.Context, record *domain.PropertyRecord) error
	// FindRecentDuplicate ищет запись того же владельца с тем же заголовком, ценой и типом,
	// созданную не раньше probe.Since.
	FindRecentDuplicate(ctx context.Context, probe domain.DuplicateProbe) (*domain.PropertyRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error)
	// IncrementViews увеличивает счетчик просмотров и возвращает обновленную запись.
	IncrementViews(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error)
	Update(ctx context.Context, record *domain.PropertyRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, error)
	Stats(ctx context.Context) (*domain.PropertyStats, error)
}

// ListingCachePort кэширует страницы выдачи. Любая запись в хранилище сбрасывает кэш целиком.
// Get при промахе возвращает ключ, под которым страницу нужно сохранить через Set.
// Ключ привязан к поколению кэша на момент чтения, поэтому страница, прочитанная из хранилища
// до Invalidate, не станет видна после него.
type ListingCachePort interface {
	Get(ctx context.Context, query domain.ListingQuery) (page *domain.ListingPage, key string, err error)
	Set(ctx context.Context, key string, page *domain.ListingPage) error
	Invalidate(ctx context.Context) error
}

// PropertyEventsPort публикует события об объявлениях.
type PropertyEventsPort interface {
	PublishPropertyCreated(ctx context.Context, event domain.PropertyCreatedEvent) error
}

// ImageStoragePort сохраняет загруженные изображения и возвращает публичный URL.
type ImageStoragePort interface {
	Upload(ctx context.Context, key string, contentType string, body []byte) (string, error)
}
