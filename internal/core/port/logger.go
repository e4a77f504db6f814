package port

// Fields - структурированные поля записи лога
type Fields map[string]interface{}

// LoggerPort - контракт логирования для ядра и адаптеров.
// Конкретные реализации живут в adapters/logger.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error пишет сообщение вместе с причиной
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields возвращает логгер, который добавляет fields к каждой записи (trace_id, use_case...)
	WithFields(fields Fields) LoggerPort
}
