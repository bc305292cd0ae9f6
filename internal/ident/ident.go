package ident

import (
	"strings"
	"unicode"
)

// closers maps an opening quote rune to the rune that closes it.
var closers = map[rune]rune{
	'"': '"',
	'`': '`',
	'[': ']',
}

// Read returns the identifier at the start of s (leading whitespace skipped) and the rest of s.
// The identifier ends at the first whitespace, comma, parenthesis or semicolon outside quotes.
func Read(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	var closer rune
	for i, r := range s {
		if closer != 0 {
			if r == closer {
				closer = 0
			}
			continue
		}
		if c, ok := closers[r]; ok {
			closer = c
			continue
		}
		if isBoundary(r) {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func isBoundary(r rune) bool {
	switch r {
	case ',', '(', ')', ';':
		return true
	}
	return unicode.IsSpace(r)
}

// Normalize strips quoting from a possibly schema-qualified identifier and lower-cases it.
// It returns "" when nothing is left.
func Normalize(raw string) string {
	parts := SplitQualified(raw)
	if len(parts) == 0 {
		return ""
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	out := strings.Join(parts, ".")
	if strings.Trim(out, ".") == "" {
		return ""
	}
	return out
}

// SplitQualified splits a potentially schema-qualified identifier into its parts, unquoting each one.
func SplitQualified(ident string) []string {
	ident = strings.TrimSpace(ident)
	if ident == "" {
		return nil
	}
	var parts []string
	var buf strings.Builder
	var closer rune
	runes := []rune(ident)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case closer != 0 && r == closer:
			// "" and `` escape the quote itself; ]] is left alone.
			if closer != ']' && i+1 < len(runes) && runes[i+1] == closer {
				buf.WriteRune(r)
				i++
				continue
			}
			closer = 0
		case closer != 0:
			buf.WriteRune(r)
		case closers[r] != 0:
			closer = closers[r]
		case r == '.':
			parts = append(parts, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	parts = append(parts, strings.TrimSpace(buf.String()))
	return parts
}
