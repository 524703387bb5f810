package depot

import (
	"go.uber.org/zap"
)

// container implements Depot.
type container struct {
	registry   *registry
	serverMode bool
	logger     *zap.Logger
}

func newContainer(opts ...Option) *container {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &container{
		registry:   newRegistry(),
		serverMode: o.serverMode,
		logger:     o.logger,
	}
}

// IsServer reports whether the container runs in server mode.
func (c *container) IsServer() bool {
	return c.serverMode
}

// Has checks if a provider is registered.
func (c *container) Has(id Identifier) bool {
	return c.registry.has(Canonicalize(id))
}

// Register adds a provider to the container.
func (c *container) Register(p Provider) bool {
	e := newEntry(p)

	if !c.registry.add(e) {
		c.logger.Debug("provider already registered", zap.String("key", e.key.Name()))

		return false
	}

	return true
}

// RegisterInstance registers a pre-built instance as a singleton.
func (c *container) RegisterInstance(id Identifier, instance any) (bool, error) {
	key := Canonicalize(id)

	if !validInstance(instance) {
		return false, ErrInvalidInstance(key.Name(), instance)
	}

	e := &entry{
		key:       key,
		singleton: true,
		instance:  instance,
	}

	if !c.registry.add(e) {
		c.logger.Debug("instance already registered", zap.String("key", key.Name()))

		return false, nil
	}

	return true, nil
}

// RegisterInjection records an injection point on a constructor.
func (c *container) RegisterInjection(inj Injection) int {
	return c.registry.addInjection(&record{
		target:         inj.Target,
		requires:       Canonicalize(inj.Requires),
		parameterIndex: inj.ParameterIndex,
		propertyKey:    inj.PropertyKey,
	})
}

// Resolve returns the instance for id, building it and its dependencies as
// needed.
func (c *container) Resolve(id Identifier) (any, error) {
	return c.resolve(Canonicalize(id), &resolution{})
}

// ResolveAll resolves each id in order. It stops at the first failure.
func (c *container) ResolveAll(ids ...Identifier) ([]any, error) {
	return c.resolveAll(ids, &resolution{})
}

// Providers returns all registered keys.
func (c *container) Providers() []Key {
	return c.registry.keys()
}
