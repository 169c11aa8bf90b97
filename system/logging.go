package system

import "go.uber.org/zap"

// Context names the subsystem emitting a log line, mirroring the original
// engine's Logging.Context enum (used there to tag DEBUG lines per
// component: POOL, COMPOSITION, REPOSITORY...).
type Context string

const (
	ContextPool        Context = "pool"
	ContextComposition Context = "composition"
	ContextRepository  Context = "repository"
	ContextClassIndex  Context = "class-index"
	ContextTest        Context = "test"
)

// Logging wraps a *zap.Logger behind the narrow interface the engine
// actually needs: leveled, structured, context-tagged lines. Every
// lifecycle event this package logs is DEBUG-level, matching the
// System.Logger.log(DEBUG, ...) calls the original DataComposition and
// ConcurrentPool make at creation/tenant time.
type Logging struct {
	base *zap.Logger
}

// NewLogging wraps an existing zap logger.
func NewLogging(base *zap.Logger) *Logging {
	if base == nil {
		base = zap.NewNop()
	}
	return &Logging{base: base}
}

// NewNopLogging returns a Logging that discards everything, for tests and
// callers that haven't opted into structured logging.
func NewNopLogging() *Logging {
	return &Logging{base: zap.NewNop()}
}

// With returns a child logger tagged with the given context.
func (l *Logging) With(ctx Context) *Logging {
	return &Logging{base: l.base.With(zap.String("context", string(ctx)))}
}

// Debug logs a structured debug line with the given key/value pairs.
func (l *Logging) Debug(msg string, keyValues ...any) {
	l.base.Debug(msg, toFields(keyValues)...)
}

// Warn logs a structured warning line.
func (l *Logging) Warn(msg string, keyValues ...any) {
	l.base.Warn(msg, toFields(keyValues)...)
}

func toFields(keyValues []any) []zap.Field {
	fields := make([]zap.Field, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, _ := keyValues[i].(string)
		fields = append(fields, zap.Any(key, keyValues[i+1]))
	}
	return fields
}
