package sqlcount

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jinzhu/inflection"
)

type evalConfig struct {
	wildcard string
	strict   bool
}

// EvalOption tunes Evaluate.
type EvalOption func(*evalConfig)

// WithWildcard sets the rule key that applies to all tables (default "_all_").
func WithWildcard(key string) EvalOption {
	return func(c *evalConfig) {
		if key != "" {
			c.wildcard = key
		}
	}
}

// WithStrict also checks every rule of tables and operations that never ran, against a count of 0.
// Without it, only the (table, operation) pairs present in the tally are checked, so a rule like
// ">= 1" is never enforced for a table that was not queried at all.
func WithStrict(strict bool) EvalOption {
	return func(c *evalConfig) {
		c.strict = strict
	}
}

// Verdict is the result of Evaluate.
type Verdict struct {
	Failures map[string][]string // table -> failure messages; empty slice when the table passed
	Unknown  []string            // raw text of unclassified statements
}

// Passed reports whether no table failed. Unknown statements never fail a verdict.
func (v Verdict) Passed() bool {
	for _, msgs := range v.Failures {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// FailingTables returns the tables with at least one failure, sorted.
func (v Verdict) FailingTables() []string {
	var out []string
	for table, msgs := range v.Failures {
		if len(msgs) > 0 {
			out = append(out, table)
		}
	}
	sort.Strings(out)
	return out
}

// Evaluate compares t against rules. For each counted (table, operation) pair the outcome is
// rules[table][op], then rules[wildcard][op], then exactly 0. The whole rule set is validated
// up front; a malformed rule aborts the evaluation with an *OutcomeError.
func Evaluate(t Tally, unknown []Query, rules Rules, opts ...EvalOption) (Verdict, error) {
	cfg := evalConfig{wildcard: DefaultWildcard}
	for _, opt := range opts {
		opt(&cfg)
	}
	compiled, err := rules.compile()
	if err != nil {
		return Verdict{}, err
	}
	wildcard := strings.ToLower(cfg.wildcard)

	v := Verdict{Failures: map[string][]string{}}
	for _, table := range visitTables(t, compiled, wildcard, cfg.strict) {
		msgs := []string{}
		for _, op := range Operations {
			count, seen := t[table][op]
			if !seen && !cfg.strict {
				continue
			}
			o := compiled.resolve(table, op, wildcard)
			if o.Match(count) {
				continue
			}
			msgs = append(msgs, fmt.Sprintf("Expected '%s' %s for table '%s', got '%d'",
				o.Raw, inflection.Plural(string(op)), table, count))
		}
		v.Failures[table] = msgs
	}
	for _, q := range unknown {
		v.Unknown = append(v.Unknown, q.SQL)
	}
	return v, nil
}

func visitTables(t Tally, rules compiledRules, wildcard string, strict bool) []string {
	tables := t.Tables()
	if !strict {
		return tables
	}
	for table := range rules {
		if _, ok := t[table]; !ok && table != wildcard {
			tables = append(tables, table)
		}
	}
	sort.Strings(tables)
	return tables
}

func (r compiledRules) resolve(table string, op Operation, wildcard string) Outcome {
	if o, ok := r[table][op]; ok {
		return o
	}
	if o, ok := r[wildcard][op]; ok {
		return o
	}
	return exactly(0)
}
