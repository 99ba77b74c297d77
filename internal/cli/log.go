package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the command logger. Timestamps read "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// levelFor maps --verbose to a log level.
func levelFor(verbose bool) log.Level {
	if verbose {
		return LogDebug
	}
	return LogInfo
}

// timer logs how long an operation took, with the operation's key/value
// pairs attached to both the start and the finish line.
type timer struct {
	logger *log.Logger
	op     string
	kv     []any
	start  time.Time
}

// startTimer logs the start of op at debug level.
func startTimer(l *log.Logger, op string, keyvals ...any) *timer {
	l.Debug(op+" started", keyvals...)
	return &timer{logger: l, op: op, kv: keyvals, start: time.Now()}
}

// done logs the end of the operation with its elapsed time and any extra
// key/value pairs.
func (t *timer) done(keyvals ...any) time.Duration {
	elapsed := time.Since(t.start).Round(time.Millisecond)
	kv := append(append([]any{}, t.kv...), keyvals...)
	t.logger.Debug(t.op+" finished", append(kv, "elapsed", elapsed)...)
	return elapsed
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by setup, or log.Default()
// for commands run without it.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
