package rabbitmq_common

import (
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Паузы между попытками переподключения, последняя повторяется до успеха
var reconnectBackoff = []time.Duration{
	time.Second,
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
}

// ConnectionName попадает в client properties и видна в management UI брокера
const ConnectionName = "addisnest-service"

var errManagerClosed = errors.New("rabbitmq: connection manager is closed")

// ConnectionManager держит одно AMQP-соединение на процесс.
// Закрытие со стороны брокера отслеживается через NotifyClose, после чего
// менеджер переподключается с нарастающей паузой.
type ConnectionManager struct {
	url    string
	logger Logger

	mu     sync.RWMutex
	conn   *amqp.Connection
	closed bool

	done      chan struct{}
	closeOnce sync.Once
}

var (
	sharedManager *ConnectionManager
	sharedErr     error
	sharedOnce    sync.Once
)

// GetManager возвращает общий для процесса менеджер, при первом вызове устанавливая соединение.
func GetManager(url string, logger Logger) (*ConnectionManager, error) {
	sharedOnce.Do(func() {
		sharedManager, sharedErr = newConnectionManager(url, logger)
	})
	return sharedManager, sharedErr
}

func newConnectionManager(url string, logger Logger) (*ConnectionManager, error) {
	if logger == nil {
		logger = NewNoopLogger()
	}
	if err := (Config{URL: url}).Validate(); err != nil {
		return nil, err
	}

	m := &ConnectionManager{url: url, logger: logger, done: make(chan struct{})}
	conn, err := m.dial()
	if err != nil {
		logger.Error(err, "Initial RabbitMQ connection failed")
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}
	m.conn = conn
	go m.watch(conn)
	return m, nil
}

func (m *ConnectionManager) dial() (*amqp.Connection, error) {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(ConnectionName)

	conn, err := amqp.DialConfig(m.url, amqp.Config{
		Heartbeat:  10 * time.Second,
		Properties: props,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	m.logger.Debug("RabbitMQ connection established")
	return conn, nil
}

// watch ждет закрытия соединения и запускает переподключение
func (m *ConnectionManager) watch(conn *amqp.Connection) {
	notify := conn.NotifyClose(make(chan *amqp.Error, 1))
	select {
	case <-m.done:
		return
	case amqpErr, ok := <-notify:
		if !ok || amqpErr == nil {
			// штатное закрытие через Close
			return
		}
		m.logger.Warn("RabbitMQ connection lost", "code", amqpErr.Code, "reason", amqpErr.Reason)
	}
	m.reconnect()
}

func (m *ConnectionManager) reconnect() {
	for attempt := 0; ; attempt++ {
		delay := reconnectBackoff[min(attempt, len(reconnectBackoff)-1)]
		select {
		case <-m.done:
			return
		case <-time.After(delay):
		}

		conn, err := m.dial()
		if err != nil {
			m.logger.Error(err, "RabbitMQ reconnect failed", "attempt", attempt+1)
			continue
		}

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			_ = conn.Close()
			return
		}
		m.conn = conn
		m.mu.Unlock()

		m.logger.Info("RabbitMQ connection restored", "attempts", attempt+1)
		go m.watch(conn)
		return
	}
}

// GetChannel открывает новый канал на текущем соединении.
// Пока идет переподключение, возвращается ошибка, и вызывающий сам решает, повторять ли.
func (m *ConnectionManager) GetChannel() (*amqp.Connection, *amqp.Channel, error) {
	m.mu.RLock()
	conn, closed := m.conn, m.closed
	m.mu.RUnlock()

	if closed {
		return nil, nil, errManagerClosed
	}
	if conn == nil || conn.IsClosed() {
		return nil, nil, fmt.Errorf("rabbitmq: connection is not available")
	}

	ch, err := conn.Channel()
	if err != nil {
		return conn, nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	return conn, ch, nil
}

// Close останавливает наблюдение и закрывает соединение. Повторный вызов ничего не делает.
func (m *ConnectionManager) Close() error {
	m.closeOnce.Do(func() { close(m.done) })

	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	if m.conn == nil || m.conn.IsClosed() {
		return nil
	}
	if err := m.conn.Close(); err != nil {
		m.logger.Error(err, "Failed to close RabbitMQ connection")
		return err
	}
	m.logger.Debug("RabbitMQ connection closed")
	return nil
}
