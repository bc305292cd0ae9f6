package sqlcount

import (
	"fmt"
	"strings"
)

// FormatReport renders v for humans: each failing table with its messages and the statements
// attributed to it, then a warning block of unknown statements. It returns "" when there is
// nothing to report.
func FormatReport(v Verdict, qs []Query) string {
	var blocks []string
	for _, table := range v.FailingTables() {
		var b strings.Builder
		fmt.Fprintf(&b, "Table '%s':\n", table)
		for _, msg := range v.Failures[table] {
			fmt.Fprintf(&b, "  %s\n", msg)
		}
		b.WriteString("  Queries:\n")
		for _, q := range qs {
			if q.Op != OpUnknown && strings.EqualFold(q.Table, table) {
				fmt.Fprintf(&b, "    %s\n", indent(q.SQL, "      "))
			}
		}
		blocks = append(blocks, b.String())
	}
	if len(v.Unknown) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "Warning: %d unknown queries:\n", len(v.Unknown))
		for _, sql := range v.Unknown {
			fmt.Fprintf(&b, "  %s\n", indent(sql, "    "))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n")
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
