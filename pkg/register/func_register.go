// Package register collects init-time hooks keyed by an arbitrary
// value, so the sqlstore provider can pick up store constructors
// without importing every store file.
package register

import "sync"

type registry struct {
	mu      sync.Mutex
	entries map[any][]any
}

var global = &registry{entries: make(map[any][]any)}

// Handler is the hook shape; the key decides which T a caller resolves
// the stored hooks as.
type Handler[T any] func(T)

func RegisterFunc[T any](key any, handler Handler[T]) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.entries[key] = append(global.entries[key], handler)
}

// ResolveFuncHandlers returns the hooks under key whose type matches T,
// silently skipping any registered with a different signature.
func ResolveFuncHandlers[T any](key any) []Handler[T] {
	global.mu.Lock()
	defer global.mu.Unlock()

	handlers := make([]Handler[T], 0, len(global.entries[key]))
	for _, e := range global.entries[key] {
		if h, ok := e.(Handler[T]); ok {
			handlers = append(handlers, h)
		}
	}
	return handlers
}
