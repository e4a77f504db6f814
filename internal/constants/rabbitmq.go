package constants

// Обменник событий объявлений
const (
	ExchangeListings     = "addisnest_listings"
	ExchangeListingsType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyPropertyCreated = "property.created"
)

// Очереди
const (
	QueuePendingListings = "pending_listings_moderation"
)

// Ретраи и финальный DLQ очереди модерации
const (
	RetryExchange      = "pending_listings_retry"
	RetryQueue         = "pending_listings_retry_wait"
	RetryTTLMillis     = 10000
	MaxRetries         = 3
	FinalDLXExchange   = "pending_listings_final_dlx"
	FinalDLQ           = "pending_listings_final_dlq"
	FinalDLQRoutingKey = "pending_listings.dlq.key"
)

// Заголовки event-type / event-version, по ним выбирается JSON-схема
const (
	HeaderEventType             = "event-type"
	HeaderEventVersion          = "event-version"
	EventTypePropertyCreated    = "PropertyCreatedEvent"
	EventVersionPropertyCreated = "1.0.0"
)
