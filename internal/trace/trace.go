// Package trace carries a per-lookup trace ID in the context so every log
// line for one symbol lookup can be grepped together.
package trace

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ctxKey int

const traceIDKey ctxKey = 0

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return ""
}

// NewTraceID returns a short random id.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Logger returns the global logger tagged with the context's trace id.
func Logger(ctx context.Context) *zerolog.Logger {
	id := TraceID(ctx)
	if id == "" {
		id = "-"
	}
	l := log.With().Str("trace", id).Logger()
	return &l
}
