package sqlcount

import (
	"strings"
	"unicode"

	"github.com/mickamy/sqlcount/internal/query"
)

// Operation is the kind of a classified statement.
type Operation string

const (
	OpSelect  Operation = query.Select
	OpInsert  Operation = query.Insert
	OpUpdate  Operation = query.Update
	OpDelete  Operation = query.Delete
	OpUnknown Operation = query.Unknown
)

// Operations lists the countable operations in report order.
var Operations = []Operation{OpSelect, OpInsert, OpUpdate, OpDelete}

func parseOperation(s string) (Operation, bool) {
	for _, op := range Operations {
		if strings.EqualFold(s, string(op)) {
			return op, true
		}
	}
	return "", false
}

// Query is one captured statement.
type Query struct {
	SQL     string    // raw text, trailing whitespace trimmed
	Op      Operation // OpUnknown when the statement could not be classified
	Table   string    // lower-cased; empty when absent
	Session string    // id of the capture that observed it, if any
}

// Classify attributes a raw SQL statement to an operation and its primary table.
// It never fails: unrecognised input yields OpUnknown with no table.
// Joined statements are attributed to the first table only.
func Classify(sql string) Query {
	st := query.Classify(sql)
	return Query{
		SQL:   strings.TrimRightFunc(sql, unicode.IsSpace),
		Op:    Operation(st.Op),
		Table: st.Table,
	}
}
