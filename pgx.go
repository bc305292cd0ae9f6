package sqlcount

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Tracer returns a pgx tracer feeding statements into the active capture.
// Install it with pgx.ConnConfig.Tracer (or pgxpool.Config.ConnConfig.Tracer).
func (c *Counter) Tracer() *Tracer {
	return &Tracer{c: c}
}

// Tracer implements pgx.QueryTracer and pgx.BatchTracer.
type Tracer struct {
	c *Counter
}

var (
	_ pgx.QueryTracer = (*Tracer)(nil)
	_ pgx.BatchTracer = (*Tracer)(nil)
)

func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	t.c.observe(ctx, data.SQL)
	return ctx
}

func (t *Tracer) TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData) {}

func (t *Tracer) TraceBatchStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceBatchStartData) context.Context {
	return ctx
}

func (t *Tracer) TraceBatchQuery(ctx context.Context, _ *pgx.Conn, data pgx.TraceBatchQueryData) {
	t.c.observe(ctx, data.SQL)
}

func (t *Tracer) TraceBatchEnd(context.Context, *pgx.Conn, pgx.TraceBatchEndData) {}
