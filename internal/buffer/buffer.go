package buffer

import (
	"sync"
)

// Buffer collects entries in insertion order.
// Every mutation bumps Version so derived views can tell when they are stale.
type Buffer[T any] struct {
	mu      sync.Mutex
	ts      []T
	version uint64
}

func NewBuffer[T any]() *Buffer[T] {
	return &Buffer[T]{}
}

func (b *Buffer[T]) Add(es ...T) {
	if len(es) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ts = append(b.ts, es...)
	b.version++
}

// Snapshot returns a copy of the buffered entries and the version it was taken at.
func (b *Buffer[T]) Snapshot() ([]T, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]T, len(b.ts))
	copy(out, b.ts)
	return out, b.version
}

func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ts)
}

func (b *Buffer[T]) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

func (b *Buffer[T]) Drain() []T {
	b.mu.Lock()
	es := b.ts
	b.ts = nil
	b.version++
	b.mu.Unlock()
	return es
}

func (b *Buffer[T]) Reset() {
	b.Drain()
}
