package contextkeys

import (
	"context"
)

// Заголовки, в которых trace_id передается между сервисами
const (
	TraceIDHeader     = "X-Trace-ID"
	TraceIDAMQPHeader = "x-trace-id"
)

type traceIDKeyType struct{}

var traceIDKey = traceIDKeyType{}

// ContextWithTraceID помещает trace_id в контекст
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext извлекает trace_id из контекста, пустая строка - если его нет
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}
