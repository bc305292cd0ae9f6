package query

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mickamy/sqlcount/internal/ident"
)

// Operation names recognised by Classify.
const (
	Select  = "select"
	Insert  = "insert"
	Update  = "update"
	Delete  = "delete"
	Unknown = "unknown"
)

// Statement is the (operation, table) attribution of one SQL statement.
// Table is empty when no table could be found.
type Statement struct {
	Op    string
	Table string
}

var (
	reLeading = regexp.MustCompile(`(?i)^(select|insert|update|delete)\b`)
	// sqlite's UPDATE OR REPLACE and postgres' ONLY sit between the keyword and the table.
	reModifier = regexp.MustCompile(`(?is)^\s*(?:or\s+[a-z]+|only)\s+`)
)

// Classify attributes q to an operation and a primary table.
// It is a lexical heuristic: statements it cannot place come back as Unknown.
func Classify(q string) Statement {
	s := skipLeading(q)
	m := reLeading.FindString(s)
	if m == "" {
		return Statement{Op: Unknown}
	}
	op := strings.ToLower(m)
	rest := s[len(m):]

	var raw string
	switch op {
	case Select, Delete:
		if i := findKeyword(rest, "from"); i >= 0 {
			raw = tableAfter(rest[i:])
		}
	case Insert:
		if i := findKeyword(rest, "into"); i >= 0 {
			raw = tableAfter(rest[i:])
		}
	case Update:
		raw = tableAfter(rest)
	}
	return Statement{Op: op, Table: ident.Normalize(raw)}
}

func tableAfter(s string) string {
	s = reModifier.ReplaceAllString(s, "")
	raw, _ := ident.Read(s)
	return raw
}

// skipLeading drops leading whitespace and comments.
func skipLeading(s string) string {
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		switch {
		case strings.HasPrefix(s, "--"):
			i := strings.IndexByte(s, '\n')
			if i < 0 {
				return ""
			}
			s = s[i+1:]
		case strings.HasPrefix(s, "/*"):
			i := strings.Index(s[2:], "*/")
			if i < 0 {
				return ""
			}
			s = s[i+4:]
		default:
			return s
		}
	}
}

// findKeyword returns the offset just past the first occurrence of kw in s that is
// outside parentheses, comments, string literals and quoted identifiers, or -1.
func findKeyword(s, kw string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '(':
			depth++
			continue
		case ')':
			if depth > 0 {
				depth--
			}
			continue
		case '\'', '"', '`':
			j := strings.IndexByte(s[i+1:], c)
			if j < 0 {
				return -1
			}
			i += j + 1
			continue
		case '/':
			if strings.HasPrefix(s[i:], "/*") {
				j := strings.Index(s[i+2:], "*/")
				if j < 0 {
					return -1
				}
				i += j + 3
				continue
			}
		case '-':
			if strings.HasPrefix(s[i:], "--") {
				j := strings.IndexByte(s[i:], '\n')
				if j < 0 {
					return -1
				}
				i += j
				continue
			}
		}
		if depth > 0 || (i > 0 && isWordByte(s[i-1])) {
			continue
		}
		end := i + len(kw)
		if end <= len(s) && strings.EqualFold(s[i:end], kw) && (end == len(s) || !isWordByte(s[end])) {
			return end
		}
	}
	return -1
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}
