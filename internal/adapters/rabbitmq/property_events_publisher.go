package rabbitmq

import (
	"addisnest-service/internal/constants"
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// jsonPublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher
type jsonPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, headers amqp.Table, payload interface{}) error
}

// PropertyEventsPublisher - исходящий адаптер для событий объявлений.
type PropertyEventsPublisher struct {
	producer   jsonPublisher
	routingKey string
}

func NewPropertyEventsPublisher(producer jsonPublisher, routingKey string) (*PropertyEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &PropertyEventsPublisher{producer: producer, routingKey: routingKey}, nil
}

func (a *PropertyEventsPublisher) PublishPropertyCreated(ctx context.Context, event domain.PropertyCreatedEvent) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyEventsPublisher",
		"routing_key": a.routingKey,
		"property_id": event.PropertyID.String(),
	})

	headers := amqp.Table{
		constants.HeaderEventType:    constants.EventTypePropertyCreated,
		constants.HeaderEventVersion: constants.EventVersionPropertyCreated,
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		headers[contextkeys.TraceIDAMQPHeader] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.PublishJSON(publishCtx, a.routingKey, headers, event); err != nil {
		logger.Error("Failed to publish property created event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event for property %s: %w", event.PropertyID, err)
	}

	logger.Info("Published property created event", port.Fields{"status": event.Status})
	return nil
}
