package sqlcount

import (
	"context"
)

type skipKey struct{}

// WithSkip marks the context so statements issued with it are not captured.
// Useful for fixtures and setup queries inside a captured block.
func WithSkip(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipKey{}, true)
}

// extractSkip extracts skip flag from context.
func extractSkip(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	if v, ok := ctx.Value(skipKey{}).(bool); ok {
		return v
	}
	return false
}
