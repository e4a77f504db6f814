package fluentlogger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config хранит настройки подключения к Fluent Bit
type Config struct {
	Host      string // "127.0.0.1" или "fluent-bit" в Docker
	Port      int    // 24224
	TagPrefix string // общий префикс тегов сервиса
	Async     bool   // не блокировать запрос, если агент недоступен
}

// NewClient создает клиента Fluent Bit. Пинга нет: ошибки соединения
// проявятся при первой отправке.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if strings.TrimSpace(cfg.TagPrefix) == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("fluentd port %d is out of range", cfg.Port)
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost:   cfg.Host,
		FluentPort:   cfg.Port,
		TagPrefix:    cfg.TagPrefix,
		Async:        cfg.Async,
		Timeout:      3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}
	return logger, nil
}
