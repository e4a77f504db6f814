package rabbitmq

import (
	"addisnest-service/internal/constants"
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/contracts"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"addisnest-service/internal/core/port/usecases_port"
	"addisnest-service/pkg/rabbitmq/rabbitmq_common"
	"addisnest-service/pkg/rabbitmq/rabbitmq_consumer"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PendingListingConsumerConfig возвращает конфигурацию очереди модерации с ретраями и финальным DLQ.
func PendingListingConsumerConfig(url, consumerTag string) rabbitmq_consumer.ConsumerConfig {
	return rabbitmq_consumer.ConsumerConfig{
		Config:                 rabbitmq_common.Config{URL: url},
		QueueName:              constants.QueuePendingListings,
		DeclareQueue:           true,
		DurableQueue:           true,
		ExchangeNameForBind:    constants.ExchangeListings,
		DeclareExchangeForBind: true,
		ExchangeTypeForBind:    constants.ExchangeListingsType,
		DurableExchangeForBind: true,
		RoutingKeyForBind:      constants.RoutingKeyPropertyCreated,
		PrefetchCount:          10,
		ConsumerTag:            consumerTag,
		EnableRetryMechanism:   true,
		RetryExchange:          constants.RetryExchange,
		RetryQueue:             constants.RetryQueue,
		RetryTTL:               constants.RetryTTLMillis,
		FinalDLXExchange:       constants.FinalDLXExchange,
		FinalDLQ:               constants.FinalDLQ,
		FinalDLQRoutingKey:     constants.FinalDLQRoutingKey,
		MaxRetries:             constants.MaxRetries,
	}
}

// PendingListingConsumerAdapter - входящий адаптер: слушает события о новых объявлениях
// и передает их в use case уведомления модераторов.
type PendingListingConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	useCase  usecases_port.NotifyPendingListingUseCasePort
	logger   port.LoggerPort
}

func NewPendingListingConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.NotifyPendingListingUseCasePort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*PendingListingConsumerAdapter, error) {
	adapter := &PendingListingConsumerAdapter{
		useCase: useCase,
		logger:  logger,
	}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewConsumer(consumerCfg, adapter.handleDelivery, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for pending listings: %w", err)
	}
	adapter.consumer = consumer
	return adapter, nil
}

// handleDelivery - ошибка возвращает сообщение на ретрай, после MaxRetries оно уходит в DLQ
func (a *PendingListingConsumerAdapter) handleDelivery(ctx context.Context, d amqp.Delivery) error {
	traceID, _ := d.Headers[contextkeys.TraceIDAMQPHeader].(string)
	if traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"message_id":   d.MessageId,
		"adapter_name": "PendingListingConsumerAdapter",
	})
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	eventType, _ := d.Headers[constants.HeaderEventType].(string)
	eventVersion, _ := d.Headers[constants.HeaderEventVersion].(string)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Message failed schema validation. Rejecting.", err, nil)
		return err
	}

	var event domain.PropertyCreatedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		msgLogger.Error("Failed to unmarshal property created event", err, nil)
		return fmt.Errorf("failed to unmarshal property created event: %w", err)
	}

	if err := a.useCase.Execute(ctx, event); err != nil {
		msgLogger.Error("Pending listing notification failed, message will be retried.", err, port.Fields{"property_id": event.PropertyID.String()})
		return err
	}
	return nil
}

// Start реализует EventListenerPort
func (a *PendingListingConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort
func (a *PendingListingConsumerAdapter) Close() error {
	return a.consumer.Close()
}
