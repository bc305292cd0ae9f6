package sqlcount

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultWildcard is the rule key whose outcomes apply to every table without its own rule.
const DefaultWildcard = "_all_"

var (
	ErrInvalidOutcome   = errors.New("sqlcount: invalid outcome")
	ErrInvalidOperation = errors.New("sqlcount: invalid operation")
)

// Ops maps an operation name (select, insert, update, delete) to an expected outcome:
// an integer (exact count), a string such as "<= 2" or ">=1", or Any / nil (any count).
type Ops map[string]any

// Rules maps a table name, or the wildcard key, to its expected outcomes.
type Rules map[string]Ops

type anyCount struct{}

func (anyCount) String() string { return "any" }

// Any accepts any number of statements.
var Any = anyCount{}

// OutcomeError reports an outcome that is neither a count, a comparison nor Any.
type OutcomeError struct {
	Table     string
	Operation string
	Spec      string
}

func (e *OutcomeError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("sqlcount: invalid outcome %q", e.Spec)
	}
	return fmt.Sprintf("sqlcount: invalid outcome %q for %s on table %q", e.Spec, e.Operation, e.Table)
}

func (e *OutcomeError) Unwrap() error { return ErrInvalidOutcome }

// Outcome is a parsed expectation for one (table, operation) pair.
type Outcome struct {
	Raw       string // as written by the caller
	Unbounded bool
	Cmp       string // ==, !=, >, >=, <, <=
	N         int
}

func exactly(n int) Outcome {
	return Outcome{Raw: strconv.Itoa(n), Cmp: "==", N: n}
}

// Match reports whether count satisfies o.
func (o Outcome) Match(count int) bool {
	if o.Unbounded {
		return true
	}
	switch o.Cmp {
	case "!=":
		return count != o.N
	case ">":
		return count > o.N
	case ">=":
		return count >= o.N
	case "<":
		return count < o.N
	case "<=":
		return count <= o.N
	default:
		return count == o.N
	}
}

var reOutcome = regexp.MustCompile(`^\s*(==|!=|>=|<=|>|<)?\s*(\d+)\s*$`)

// ParseOutcome converts a rule value into an Outcome.
func ParseOutcome(v any) (Outcome, error) {
	switch x := v.(type) {
	case nil, anyCount:
		return Outcome{Raw: "any", Unbounded: true}, nil
	case string:
		if strings.EqualFold(strings.TrimSpace(x), "any") {
			return Outcome{Raw: x, Unbounded: true}, nil
		}
		m := reOutcome.FindStringSubmatch(x)
		if m == nil {
			return Outcome{}, &OutcomeError{Spec: x}
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Outcome{}, &OutcomeError{Spec: x}
		}
		cmp := m[1]
		if cmp == "" {
			cmp = "=="
		}
		return Outcome{Raw: x, Cmp: cmp, N: n}, nil
	}
	n, ok := toInt(v)
	if !ok || n < 0 {
		return Outcome{}, &OutcomeError{Spec: fmt.Sprint(v)}
	}
	return exactly(n), nil
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), x >= math.MinInt && x <= math.MaxInt
	case uint:
		return int(x), x <= math.MaxInt
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), uint64(x) <= math.MaxInt
	case uint64:
		return int(x), x <= math.MaxInt
	}
	return 0, false
}

type compiledRules map[string]map[Operation]Outcome

// compile parses every outcome in r so a bad rule fails regardless of what was captured.
func (r Rules) compile() (compiledRules, error) {
	tables := make([]string, 0, len(r))
	for table := range r {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	out := make(compiledRules, len(r))
	for _, table := range tables {
		ops := r[table]
		names := make([]string, 0, len(ops))
		for name := range ops {
			names = append(names, name)
		}
		sort.Strings(names)

		key := strings.ToLower(table)
		if out[key] == nil {
			out[key] = map[Operation]Outcome{}
		}
		for _, name := range names {
			op, ok := parseOperation(name)
			if !ok {
				return nil, fmt.Errorf("%w %q on table %q", ErrInvalidOperation, name, table)
			}
			o, err := ParseOutcome(ops[name])
			if err != nil {
				var oe *OutcomeError
				if errors.As(err, &oe) {
					oe.Table, oe.Operation = table, name
				}
				return nil, err
			}
			out[key][op] = o
		}
	}
	return out, nil
}

// Validate checks that every operation name and outcome in r is well formed.
func (r Rules) Validate() error {
	_, err := r.compile()
	return err
}

// LoadRules decodes rules from YAML:
//
//	_all_:
//	  select: ">= 1"
//	book:
//	  select: 2
//	  insert: any
func LoadRules(r io.Reader) (Rules, error) {
	rules := Rules{}
	if err := yaml.NewDecoder(r).Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("sqlcount: failed to decode rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

func LoadRulesFile(path string) (Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sqlcount: failed to open rules: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	return LoadRules(f)
}
