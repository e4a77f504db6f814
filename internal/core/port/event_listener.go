package port

import "context"

// EventListenerPort - входящий адаптер, который слушает брокер сообщений.
type EventListenerPort interface {
	// Start запускает слушателя и блокируется до отмены контекста
	Start(ctx context.Context) error

	// Close корректно останавливает слушателя, дожидаясь завершения активных задач
	Close() error
}
