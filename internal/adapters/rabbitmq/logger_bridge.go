package rabbitmq

import (
	"fmt"

	"addisnest-service/internal/core/port"
	"addisnest-service/pkg/rabbitmq/rabbitmq_common"
)

// amqpLogger пишет сообщения пакетов pkg/rabbitmq в общий логгер сервиса.
type amqpLogger struct {
	log port.LoggerPort
}

// NewPkgLoggerBridge оборачивает LoggerPort в интерфейс rabbitmq_common.Logger.
func NewPkgLoggerBridge(logger port.LoggerPort) rabbitmq_common.Logger {
	return amqpLogger{log: logger.WithFields(port.Fields{"transport": "amqp"})}
}

// kv собирает пары ключ-значение. Ключ, не являющийся строкой, приводится через fmt,
// значение без пары записывается как "<missing>".
func kv(pairs []interface{}) port.Fields {
	if len(pairs) == 0 {
		return nil
	}
	fields := make(port.Fields, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			key = fmt.Sprint(pairs[i])
		}
		if i+1 < len(pairs) {
			fields[key] = pairs[i+1]
		} else {
			fields[key] = "<missing>"
		}
	}
	return fields
}

func (l amqpLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, kv(keysAndValues))
}

func (l amqpLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, kv(keysAndValues))
}

func (l amqpLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn(msg, kv(keysAndValues))
}

func (l amqpLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, err, kv(keysAndValues))
}
