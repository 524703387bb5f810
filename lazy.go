package depot

import (
	"fmt"
	"sync"
)

// Lazy wraps a dependency that is resolved on first access and then kept for
// the life of the Lazy. Embed one per holder instance to get per-instance
// values on servers; share one to get a process-wide value on clients.
type Lazy[T any] struct {
	container Depot
	key       Key
	mu        sync.Mutex
	value     T
	resolved  bool
}

// NewLazy creates a new lazy dependency wrapper.
func NewLazy[T any](c Depot, id Identifier) *Lazy[T] {
	return &Lazy[T]{
		container: c,
		key:       Canonicalize(id),
	}
}

// Get resolves the dependency and returns it. A failed resolution is not
// cached, so a later Get tries again.
func (l *Lazy[T]) Get() (T, error) {
	var zero T

	if l.container == nil {
		return zero, ErrNoContainer(l.key.Name())
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved {
		return l.value, nil
	}

	value, err := Resolve[T](l.container, l.key)
	if err != nil {
		return zero, err
	}

	l.value = value
	l.resolved = true

	return l.value, nil
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.key.Name(), err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.resolved
}

// Key returns the key of the dependency.
func (l *Lazy[T]) Key() Key {
	return l.key
}
