package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// readStatements reads SQL statements from path ("-" or "" for stdin).
// Statements are one per non-empty line, or separated by ';' when split is set.
func readStatements(path string, stdin io.Reader, split bool) ([]string, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func(f *os.File) {
			_ = f.Close()
		}(f)
		r = f
	}

	if split {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read statements: %w", err)
		}
		var out []string
		for _, s := range strings.Split(string(b), ";") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}

	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			out = append(out, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statements: %w", err)
	}
	return out, nil
}
