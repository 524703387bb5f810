package depot

import (
	"reflect"
	"sync"
)

// Provider describes a registered capability: the key it provides, the recipe
// that builds it and the keys passed positionally to that recipe.
type Provider struct {
	// Key is the capability this provider satisfies.
	Key Identifier

	// Constructor builds the instance. Nil means a pre-built instance.
	Constructor *Constructor

	// Requires lists keys resolved in order and passed positionally to
	// Constructor. It takes precedence over constructor injection records.
	Requires []Identifier

	// Singleton caches and reuses the produced instance on clients.
	Singleton bool
}

// Injection describes one declared injection point on a constructor.
type Injection struct {
	// Target is the constructor the injection belongs to.
	Target *Constructor

	// Requires is the key to inject.
	Requires Identifier

	// ParameterIndex is the position in the constructor parameter list.
	ParameterIndex int

	// PropertyKey, when set, also assigns the resolved value onto the
	// produced instance under this name.
	PropertyKey string
}

// entry is the registry's copy of a Provider plus its cached instance.
type entry struct {
	key         Key
	constructor *Constructor
	requires    []Key
	singleton   bool
	instance    any
	mu          sync.RWMutex
}

func newEntry(p Provider) *entry {
	e := &entry{
		key:         Canonicalize(p.Key),
		constructor: p.Constructor,
		singleton:   p.Singleton,
	}

	if len(p.Requires) > 0 {
		e.requires = make([]Key, len(p.Requires))
		for i, id := range p.Requires {
			e.requires[i] = Canonicalize(id)
		}
	}

	return e
}

func (e *entry) cached() any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.instance
}

func (e *entry) store(instance any) {
	e.mu.Lock()
	e.instance = instance
	e.mu.Unlock()
}

// record is the registry's copy of an Injection plus its client-side memo.
type record struct {
	target         *Constructor
	requires       Key
	parameterIndex int
	propertyKey    string
	instance       any
	mu             sync.Mutex
}

// validInstance reports whether v may be registered as a pre-built instance.
// Reference-like kinds, structs and arrays qualify; nil and primitives do not.
func validInstance(v any) bool {
	if isNil(v) {
		return false
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.Struct, reflect.Array, reflect.Interface, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// isNil reports whether v is nil or a nil pointer, map, slice, chan or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
