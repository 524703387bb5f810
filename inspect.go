package depot

import "fmt"

const (
	// LifecycleSingleton marks providers whose instance is reused on clients.
	LifecycleSingleton = "singleton"

	// LifecycleTransient marks providers built on every resolve.
	LifecycleTransient = "transient"

	// KindConstructor marks providers built by a constructor.
	KindConstructor = "constructor"

	// KindInstance marks pre-built instances.
	KindInstance = "instance"
)

// ProviderInfo contains diagnostic information about a provider.
type ProviderInfo struct {
	Key        Key
	Registered bool
	Lifecycle  string
	Kind       string
	Type       string
	Requires   []string
	Injections int
	Cached     bool
}

// Inspect returns diagnostic information about a provider.
func (c *container) Inspect(id Identifier) ProviderInfo {
	key := Canonicalize(id)

	e, ok := c.registry.get(key)
	if !ok {
		return ProviderInfo{Key: key}
	}

	info := ProviderInfo{
		Key:        e.key,
		Registered: true,
		Lifecycle:  LifecycleTransient,
		Kind:       KindInstance,
		Type:       "unknown",
		Injections: c.registry.countInjections(e.constructor),
		Cached:     e.cached() != nil,
	}

	if e.singleton {
		info.Lifecycle = LifecycleSingleton
	}

	if e.constructor != nil {
		info.Kind = KindConstructor
		info.Type = e.constructor.String()
	} else if instance := e.cached(); instance != nil {
		info.Type = fmt.Sprintf("%T", instance)
	}

	for _, req := range e.requires {
		info.Requires = append(info.Requires, req.Name())
	}

	return info
}

// ProviderQuery defines criteria for querying providers.
type ProviderQuery struct {
	// Lifecycle filters by lifecycle. Empty string matches all.
	Lifecycle string

	// Kind filters by provider kind. Empty string matches all.
	Kind string

	// Cached filters by whether an instance is cached. nil matches all.
	Cached *bool
}

// Query returns information about the providers matching the query, sorted
// by key name.
//
// Example:
//
//	cached := true
//	built := depot.Query(c, depot.ProviderQuery{
//	    Kind:   depot.KindConstructor,
//	    Cached: &cached,
//	})
func Query(c Depot, query ProviderQuery) []ProviderInfo {
	var results []ProviderInfo

	for _, key := range c.Providers() {
		info := c.Inspect(key)

		if query.Lifecycle != "" && info.Lifecycle != query.Lifecycle {
			continue
		}

		if query.Kind != "" && info.Kind != query.Kind {
			continue
		}

		if query.Cached != nil && info.Cached != *query.Cached {
			continue
		}

		results = append(results, info)
	}

	return results
}

// QueryNames returns the key names of providers matching the query.
func QueryNames(c Depot, query ProviderQuery) []string {
	results := Query(c, query)
	names := make([]string, len(results))

	for i, info := range results {
		names[i] = info.Key.Name()
	}

	return names
}
