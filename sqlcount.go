package sqlcount

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Config defines the main configuration options for sqlcount.
type Config struct {
	Wildcard string       // rule key applied to tables without their own rule, e.g. "_all_" (default)
	Strict   bool         // also enforce rules of tables/operations that never ran
	Logger   *slog.Logger // optional; captured statements are logged at debug level
}

// Counter captures statements while a block runs and checks them against expectations.
// A Counter is meant for one test subject at a time; use separate Counters for independent subjects.
type Counter struct {
	cfg Config
	log *Log

	mu   sync.Mutex
	hook func(sql string)
}

// New creates a new Counter instance with sensible defaults.
func New(cfg Config) *Counter {
	if cfg.Wildcard == "" {
		cfg.Wildcard = DefaultWildcard
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Counter{cfg: cfg, log: NewLog()}
}

// Log returns the log captured statements are appended to.
func (c *Counter) Log() *Log {
	return c.log
}

// swap installs h as the active hook and returns the previous one.
func (c *Counter) swap(h func(string)) func(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.hook
	c.hook = h
	return prev
}

// observe hands sql to the active capture, if any.
func (c *Counter) observe(ctx context.Context, sql string) {
	if extractSkip(ctx) {
		return
	}
	c.mu.Lock()
	h := c.hook
	c.mu.Unlock()
	if h != nil {
		h(sql)
	}
}

// Capture runs fn and appends every statement observed meanwhile to the log.
// The previous hook is restored on every exit path and fn's error is returned unchanged.
func (c *Counter) Capture(ctx context.Context, fn func(ctx context.Context) error) error {
	session := uuid.NewString()
	prev := c.swap(func(sql string) {
		q := Classify(sql)
		q.Session = session
		c.cfg.Logger.Debug("sqlcount: captured query",
			slog.String("session", session),
			slog.String("op", string(q.Op)),
			slog.String("table", q.Table),
			slog.String("sql", q.SQL),
		)
		c.log.AppendQueries(q)
	})
	defer c.swap(prev)
	return fn(ctx)
}

// Run is Capture for blocks that return a value.
func Run[T any](ctx context.Context, c *Counter, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := c.Capture(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

// Check evaluates the captured statements against rules and clears the log.
// The returned report is empty when there is nothing to report.
func (c *Counter) Check(rules Rules) (bool, string, error) {
	v, report, err := check(c.log, rules, WithWildcard(c.cfg.Wildcard), WithStrict(c.cfg.Strict))
	if err != nil {
		return false, "", err
	}
	c.cfg.Logger.Debug("sqlcount: evaluated",
		slog.Bool("passed", v.Passed()),
		slog.Int("tables", len(v.FailingTables())),
		slog.Int("unknown", len(v.Unknown)),
	)
	return v.Passed(), report, nil
}

// Check evaluates l against rules, formats the report and clears l, also when rules are invalid.
func Check(l *Log, rules Rules, opts ...EvalOption) (bool, string, error) {
	v, report, err := check(l, rules, opts...)
	if err != nil {
		return false, "", err
	}
	return v.Passed(), report, nil
}

func check(l *Log, rules Rules, opts ...EvalOption) (Verdict, string, error) {
	defer l.Clear()
	qs, tally := l.snapshot()
	v, err := Evaluate(tally, unknownQueries(qs), rules, opts...)
	if err != nil {
		return Verdict{}, "", err
	}
	return v, FormatReport(v, qs), nil
}

// TB is the subset of testing.TB Assert reports to.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// Assert checks the captured statements and reports the outcome to t.
// Invalid rules are fatal; unexpected counts fail the test; unknown statements alone are only logged.
func (c *Counter) Assert(t TB, rules Rules) bool {
	t.Helper()
	passed, report, err := c.Check(rules)
	if err != nil {
		t.Fatalf("%v", err)
		return false
	}
	if !passed {
		t.Errorf("sqlcount: unexpected queries\n%s", report)
		return false
	}
	if report != "" {
		t.Logf("sqlcount: %s", report)
	}
	return true
}
