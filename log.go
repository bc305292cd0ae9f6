package sqlcount

import (
	"sync"

	"github.com/mickamy/sqlcount/internal/buffer"
)

// Log is an ordered, append-only record of classified statements.
// It is only ever emptied as a whole, through Clear. Create one with NewLog.
type Log struct {
	buf *buffer.Buffer[Query]

	mu      sync.Mutex
	tally   Tally
	version uint64
	built   bool
}

func NewLog() *Log {
	return &Log{buf: buffer.NewBuffer[Query]()}
}

// Append classifies each statement in order and adds it to the end of the log.
func (l *Log) Append(batch ...string) {
	qs := make([]Query, len(batch))
	for i, s := range batch {
		qs[i] = Classify(s)
	}
	l.buf.Add(qs...)
}

// AppendQueries adds already classified statements.
func (l *Log) AppendQueries(qs ...Query) {
	l.buf.Add(qs...)
}

// Queries returns a copy of the log in insertion order.
func (l *Log) Queries() []Query {
	qs, _ := l.buf.Snapshot()
	return qs
}

func (l *Log) Len() int {
	return l.buf.Len()
}

// Clear drops every entry.
func (l *Log) Clear() {
	l.buf.Reset()
}

// Tally returns the per-table operation counts of the current log contents.
// The result is cached until the log changes and must not be modified.
func (l *Log) Tally() Tally {
	_, t := l.snapshot()
	return t
}

// snapshot returns the log contents and the tally of exactly those contents.
func (l *Log) snapshot() ([]Query, Tally) {
	l.mu.Lock()
	defer l.mu.Unlock()
	qs, v := l.buf.Snapshot()
	if !l.built || l.version != v {
		l.tally = BuildTally(qs)
		l.version = v
		l.built = true
	}
	return qs, l.tally
}

// Unknown returns the statements that could not be classified.
func (l *Log) Unknown() []Query {
	return unknownQueries(l.Queries())
}

func unknownQueries(qs []Query) []Query {
	var out []Query
	for _, q := range qs {
		if q.Op == OpUnknown {
			out = append(out, q)
		}
	}
	return out
}
