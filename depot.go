// Package depot is a runtime dependency-injection container.
//
// A container maps dependency keys to providers: construction recipes, or
// pre-built instances. Resolving a key builds the instance and, recursively,
// everything it depends on. Dependencies are declared either as an explicit
// ordered requires list on the provider, or as per-parameter injection
// records on its constructor.
//
//	c := depot.New()
//	c.Register(depot.Provider{
//	    Key:         depot.Name("db"),
//	    Constructor: depot.MustConstructor(NewDatabase),
//	    Singleton:   true,
//	})
//	c.Register(depot.Provider{
//	    Key:         depot.Name("users"),
//	    Constructor: depot.MustConstructor(NewUserService),
//	    Requires:    []depot.Identifier{depot.Name("db")},
//	    Singleton:   true,
//	})
//	users, err := depot.Resolve[*UserService](c, depot.Name("users"))
//
// Containers built WithServerMode(true) construct a fresh instance on every
// resolve, even for singletons.
package depot

// Depot is the registration and resolution surface of a container.
type Depot interface {
	// IsServer reports whether the container runs in server mode.
	IsServer() bool

	// Has reports whether a provider is registered for id.
	Has(id Identifier) bool

	// Register adds a provider. It returns false, leaving the registry
	// untouched, if the key is already registered.
	Register(p Provider) bool

	// RegisterInstance registers a pre-built, always-singleton instance.
	// It returns false if the key is already registered and an error if the
	// instance is nil or a primitive value.
	RegisterInstance(id Identifier, instance any) (bool, error)

	// RegisterInjection records an injection point on a constructor and
	// returns its position within that constructor's records.
	RegisterInjection(inj Injection) int

	// Resolve produces the instance for id.
	Resolve(id Identifier) (any, error)

	// ResolveAll resolves each id in order.
	ResolveAll(ids ...Identifier) ([]any, error)

	// Providers returns every registered key sorted by name.
	Providers() []Key

	// Inspect returns diagnostic information about a provider.
	Inspect(id Identifier) ProviderInfo
}

// New creates a new container.
func New(opts ...Option) Depot {
	return newContainer(opts...)
}
