package rabbitmq_consumer

import (
	"context"
	"fmt"
	"time"

	"addisnest-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. Ack/nack/retry решает пакет по возвращенной ошибке.
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// Consumer читает очередь и обрабатывает каждое сообщение в отдельной горутине
type Consumer struct {
	base    *baseConsumer
	handler MessageHandler
}

// NewConsumer создает потребителя и объявляет его топологию
func NewConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	if handler == nil {
		return nil, fmt.Errorf("consumer: message handler is required")
	}
	if connManager == nil {
		return nil, fmt.Errorf("consumer: connection manager is required")
	}

	bc, err := newBaseConsumer(cfg, connManager)
	if err != nil {
		return nil, fmt.Errorf("consumer: %w", err)
	}
	return &Consumer{base: bc, handler: handler}, nil
}

// StartConsuming блокируется до отмены ctx (штатно, nil) или закрытия соединения брокером (ошибка)
func (c *Consumer) StartConsuming(ctx context.Context) error {
	bc := c.base
	if bc.channel == nil || bc.connection == nil || bc.connection.IsClosed() {
		return fmt.Errorf("consumer: not connected")
	}

	msgs, err := bc.channel.Consume(
		bc.actualQueueName,
		bc.config.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumer %s: failed to register on queue '%s': %w", bc.config.ConsumerTag, bc.actualQueueName, err)
	}

	bc.Logger.Info("Waiting for messages", "queue_name", bc.actualQueueName)

	go c.dispatch(ctx, msgs)

	notifyClose := bc.connection.NotifyClose(make(chan *amqp.Error, 1))
	select {
	case <-ctx.Done():
		bc.Logger.Info("Context cancelled, consumer stops", "consumer_tag", bc.config.ConsumerTag)
		return nil
	case amqpErr := <-notifyClose:
		if amqpErr == nil {
			return fmt.Errorf("consumer %s: connection closed", bc.config.ConsumerTag)
		}
		bc.Logger.Error(amqpErr, "Connection closed for consumer", "consumer_tag", bc.config.ConsumerTag)
		return amqpErr
	}
}

func (c *Consumer) dispatch(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		// не берем новую работу после отмены
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				c.base.Logger.Info("Deliveries channel closed", "consumer_tag", c.base.config.ConsumerTag)
				return
			}
			c.base.wg.Add(1)
			go func(delivery amqp.Delivery) {
				defer c.base.wg.Done()
				c.process(ctx, delivery)
			}(d)
		}
	}
}

func (c *Consumer) process(ctx context.Context, delivery amqp.Delivery) {
	bc := c.base
	logger := bc.Logger

	handleErr := c.handler(ctx, delivery)
	if handleErr == nil {
		_ = delivery.Ack(false)
		logger.Debug("Message acked", "delivery_tag", delivery.DeliveryTag)
		return
	}

	logger.Error(handleErr, "Handler failed", "delivery_tag", delivery.DeliveryTag)

	if !bc.config.EnableRetryMechanism {
		_ = delivery.Nack(false, false)
		return
	}

	deaths := deathCount(delivery, bc.actualQueueName)
	if deaths < int64(bc.config.MaxRetries) {
		logger.Info("Sending message to retry", "delivery_tag", delivery.DeliveryTag, "death_count", deaths)
		_ = delivery.Nack(false, false)
		return
	}

	logger.Warn("Max retries reached, moving message to final DLQ", "delivery_tag", delivery.DeliveryTag)
	publishCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := bc.finalDlxPublisher.Publish(publishCtx, bc.config.FinalDLQRoutingKey, amqp.Publishing{
		ContentType:  delivery.ContentType,
		Body:         delivery.Body,
		Headers:      delivery.Headers,
		Timestamp:    time.Now(),
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		// не смогли переложить - пусть сообщение пройдет еще один круг ретрая
		logger.Error(err, "Failed to publish to final DLX", "delivery_tag", delivery.DeliveryTag)
		_ = delivery.Nack(false, false)
		return
	}
	_ = delivery.Ack(false)
}

// Close дожидается активных обработчиков и закрывает канал
func (c *Consumer) Close() error {
	return c.base.Close()
}
