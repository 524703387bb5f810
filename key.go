package depot

import "sync"

// Identifier names a requested capability. Both Name and Key implement it, so
// every container operation accepts either a short name or a key handle.
type Identifier interface {
	Key() Key
}

// Name is a short string identifier. It canonicalizes to the interned key of
// the same name.
type Name string

// Key returns the interned key for the name.
func (n Name) Key() Key {
	return For(string(n))
}

// Key is an opaque handle for a dependency. Keys are compared by their
// descriptive name, never by handle identity: two keys created independently
// with the same name address the same provider.
type Key struct {
	h *handle
}

type handle struct {
	name string
}

// symbols is the process-wide interning table used by For.
var symbols = struct {
	mu    sync.RWMutex
	table map[string]*handle
}{table: make(map[string]*handle)}

// NewKey creates a fresh key handle with the given descriptive name.
// The handle is distinct from every other handle, including ones with the
// same name, but it still resolves to the same provider as they do.
func NewKey(name string) Key {
	return Key{h: &handle{name: name}}
}

// For returns the interned key for name. Repeated calls with the same name
// return the same handle.
func For(name string) Key {
	symbols.mu.RLock()
	h, ok := symbols.table[name]
	symbols.mu.RUnlock()

	if ok {
		return Key{h: h}
	}

	symbols.mu.Lock()
	defer symbols.mu.Unlock()

	// Double-check after acquiring write lock
	if h, ok := symbols.table[name]; ok {
		return Key{h: h}
	}

	h = &handle{name: name}
	symbols.table[name] = h

	return Key{h: h}
}

// Canonicalize maps an identifier onto its interned key.
func Canonicalize(id Identifier) Key {
	if id == nil {
		return For("")
	}

	return id.Key().Canonical()
}

// Key implements Identifier.
func (k Key) Key() Key {
	return k
}

// Name returns the descriptive name of the key.
func (k Key) Name() string {
	if k.h == nil {
		return ""
	}

	return k.h.name
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return k.Name()
}

// Equal reports whether both keys carry the same descriptive name.
func (k Key) Equal(other Key) bool {
	return k.Name() == other.Name()
}

// Same reports whether both keys are the very same handle.
func (k Key) Same(other Key) bool {
	return k.h == other.h
}

// Canonical returns the interned key with the same name.
func (k Key) Canonical() Key {
	return For(k.Name())
}
