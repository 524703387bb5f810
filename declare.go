package depot

import "go.uber.org/zap"

// InjectableOption configures how a constructor is declared as a provider.
type InjectableOption interface {
	applyInjectable(*injectableConfig)
}

type injectableConfig struct {
	provides  Identifier
	requires  []Identifier
	singleton bool
}

// injectableOptionFunc is a function adapter for InjectableOption
type injectableOptionFunc func(*injectableConfig)

func (f injectableOptionFunc) applyInjectable(c *injectableConfig) { f(c) }

// Provides sets the key the constructor provides. Without it the key is the
// name of the constructor's result type, e.g. "*app.UserService".
func Provides(id Identifier) InjectableOption {
	return injectableOptionFunc(func(c *injectableConfig) {
		c.provides = id
	})
}

// Requires declares the keys passed positionally to the constructor.
// Requires takes precedence over injection records declared with Inject.
//
// Example:
//
//	depot.Injectable(c, NewUserService,
//	    depot.Provides(depot.Name("users")),
//	    depot.Requires(depot.Name("db"), depot.Name("logger")),
//	)
func Requires(ids ...Identifier) InjectableOption {
	return injectableOptionFunc(func(c *injectableConfig) {
		c.requires = append(c.requires, ids...)
	})
}

// AsSingleton makes the provider a singleton (default).
func AsSingleton() InjectableOption {
	return injectableOptionFunc(func(c *injectableConfig) {
		c.singleton = true
	})
}

// AsTransient makes the provider build a new instance on each resolve.
func AsTransient() InjectableOption {
	return injectableOptionFunc(func(c *injectableConfig) {
		c.singleton = false
	})
}

// Injectable declares constructor as a provider in c and returns the
// constructor identity to attach injections to. constructor is either a
// function or a *Constructor from an earlier declaration.
//
// Declaring a key twice keeps the first provider; the second declaration is
// logged and otherwise ignored.
func Injectable(c Depot, constructor any, opts ...InjectableOption) (*Constructor, error) {
	ctor, err := NewConstructor(constructor)
	if err != nil {
		return nil, err
	}

	config := &injectableConfig{singleton: true}
	for _, opt := range opts {
		opt.applyInjectable(config)
	}

	provides := config.provides
	if provides == nil {
		provides = Name(ctor.String())
	}

	ok := c.Register(Provider{
		Key:         provides,
		Constructor: ctor,
		Requires:    config.requires,
		Singleton:   config.singleton,
	})
	if !ok {
		loggerOf(c).Warn("injectable already declared, keeping first provider",
			zap.String("key", Canonicalize(provides).Name()),
			zap.String("constructor", ctor.String()),
		)
	}

	return ctor, nil
}

// MustInjectable is like Injectable but panics on an invalid constructor.
func MustInjectable(c Depot, constructor any, opts ...InjectableOption) *Constructor {
	ctor, err := Injectable(c, constructor, opts...)
	if err != nil {
		panic(err)
	}

	return ctor
}

// Inject declares that parameter index of target receives the instance of
// requires. It returns the record's position among target's injections.
func Inject(c Depot, target *Constructor, index int, requires Identifier) int {
	return c.RegisterInjection(Injection{
		Target:         target,
		Requires:       requires,
		ParameterIndex: index,
	})
}

// Import is an alias for Inject.
var Import = Inject

// InjectProp is like Inject but also assigns the resolved value onto the
// produced instance under property, a struct field name or `inject` tag.
func InjectProp(c Depot, target *Constructor, index int, requires Identifier, property string) int {
	return c.RegisterInjection(Injection{
		Target:         target,
		Requires:       requires,
		ParameterIndex: index,
		PropertyKey:    property,
	})
}

// loggerOf returns the diagnostics logger of c, or a no-op logger for
// foreign Depot implementations.
func loggerOf(c Depot) *zap.Logger {
	if impl, ok := c.(*container); ok {
		return impl.logger
	}

	return zap.NewNop()
}
