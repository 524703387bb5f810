package depot

import (
	"slices"
	"sort"
	"sync"
)

// registry maps canonical key names to provider entries, and constructor
// identities to their declared injection records.
type registry struct {
	entries    map[string]*entry
	injections map[*Constructor][]*record
	mu         sync.RWMutex
}

func newRegistry() *registry {
	return &registry{
		entries:    make(map[string]*entry),
		injections: make(map[*Constructor][]*record),
	}
}

// has checks if a provider exists for the key
func (r *registry) has(key Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[key.Name()]

	return ok
}

// get retrieves a provider entry by key
func (r *registry) get(key Key) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key.Name()]

	return e, ok
}

// add inserts e unless its key is already taken. First registration wins.
func (r *registry) add(e *entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.key.Name()]; exists {
		return false
	}

	r.entries[e.key.Name()] = e

	return true
}

// addInjection appends rec to its target's list and returns its position.
func (r *registry) addInjection(rec *record) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.injections[rec.target] = append(r.injections[rec.target], rec)

	return len(r.injections[rec.target]) - 1
}

// injectionsFor returns the records declared on ctor sorted by parameter
// index. The stored order is left untouched.
func (r *registry) injectionsFor(ctor *Constructor) []*record {
	if ctor == nil {
		return nil
	}

	r.mu.RLock()
	records := slices.Clone(r.injections[ctor])
	r.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].parameterIndex < records[j].parameterIndex
	})

	return records
}

// countInjections returns how many records are declared on ctor.
func (r *registry) countInjections(ctor *Constructor) int {
	if ctor == nil {
		return 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.injections[ctor])
}

// keys returns all registered keys sorted by name.
func (r *registry) keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]Key, 0, len(r.entries))
	for _, e := range r.entries {
		keys = append(keys, e.key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Name() < keys[j].Name()
	})

	return keys
}
