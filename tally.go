package sqlcount

import (
	"sort"
)

// Tally maps table -> operation -> number of statements.
// Only pairs that occurred are present.
type Tally map[string]map[Operation]int

// BuildTally counts qs. Unknown statements are not counted.
func BuildTally(qs []Query) Tally {
	t := Tally{}
	for _, q := range qs {
		if q.Op == OpUnknown {
			continue
		}
		ops, ok := t[q.Table]
		if !ok {
			ops = map[Operation]int{}
			t[q.Table] = ops
		}
		ops[q.Op]++
	}
	return t
}

// Count returns the number of op statements against table; 0 if none.
func (t Tally) Count(table string, op Operation) int {
	return t[table][op]
}

// Tables returns the tallied table names, sorted.
func (t Tally) Tables() []string {
	out := make([]string, 0, len(t))
	for table := range t {
		out = append(out, table)
	}
	sort.Strings(out)
	return out
}
