package pg

import (
	"context"
	"strings"
	"time"

	"trainerbot/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Tracer logs statements through zerolog, it implements pgx.QueryTracer
type Tracer struct {
	log  logger.Logger
	all  bool
	slow time.Duration
}

// NewTracer logs every statement when all is set, otherwise only those slower than slow
func NewTracer(log logger.Logger, all bool, slow time.Duration) *Tracer {
	return &Tracer{log: log, all: all, slow: slow}
}

type traceKey struct{}

type traceStart struct {
	sql string
	at  time.Time
}

// TraceQueryStart stashes the statement and its start time on ctx
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, at: time.Now()})
}

// TraceQueryEnd logs the statement
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := time.Since(st.at)
	slow := t.slow > 0 && elapsed >= t.slow

	var evt *zerolog.Event
	switch {
	case data.Err != nil:
		evt = t.log.Error().Err(data.Err)
	case slow:
		evt = t.log.Warn()
	case t.all:
		evt = t.log.Debug()
	default:
		return
	}
	evt.Dur("elapsed", elapsed).
		Bool("slow", slow).
		Str("sql", compact(st.sql)).
		Str("tag", data.CommandTag.String()).
		Msg("pg query")
}

// compact folds runs of whitespace so multi line SQL stays on one log line
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
