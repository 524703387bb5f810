// Package injector holds the process-wide default container for code that
// cannot be handed a container explicitly, such as package-level declarations
// run from init functions.
//
// Prefer passing a depot.Depot around. Tests that touch the default container
// should call Reset, or install their own with SetContainer.
package injector

import (
	"sync"

	"go.uber.org/zap"

	"github.com/xraph/depot"
	"github.com/xraph/depot/config"
)

var (
	mu      sync.RWMutex
	current depot.Depot
)

// Container returns the current default container, creating it from the
// environment on first use.
func Container() depot.Depot {
	mu.RLock()
	c := current
	mu.RUnlock()

	if c != nil {
		return c
	}

	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		current = fromEnv()
	}

	return current
}

// SetContainer replaces the default container. A nil container makes the
// next Container call build a fresh one.
func SetContainer(c depot.Depot) {
	mu.Lock()
	current = c
	mu.Unlock()
}

// Reset drops the default container.
func Reset() {
	SetContainer(nil)
}

// Injectable declares constructor as a provider in the default container.
func Injectable(constructor any, opts ...depot.InjectableOption) (*depot.Constructor, error) {
	return depot.Injectable(Container(), constructor, opts...)
}

// Inject declares a constructor parameter injection in the default container.
func Inject(target *depot.Constructor, index int, requires depot.Identifier) int {
	return depot.Inject(Container(), target, index, requires)
}

// InjectProp declares a constructor parameter injection that also assigns
// the value onto property, in the default container.
func InjectProp(target *depot.Constructor, index int, requires depot.Identifier, property string) int {
	return depot.InjectProp(Container(), target, index, requires, property)
}

// RegisterInstance registers a pre-built instance in the default container.
func RegisterInstance(id depot.Identifier, instance any) (bool, error) {
	return Container().RegisterInstance(id, instance)
}

// Resolve resolves id from the default container with type safety.
func Resolve[T any](id depot.Identifier) (T, error) {
	return depot.Resolve[T](Container(), id)
}

// Must resolves id from the default container or panics.
func Must[T any](id depot.Identifier) T {
	return depot.Must[T](Container(), id)
}

// fallbackLogger reports configuration problems when the configured logger
// cannot be used.
var fallbackLogger = func() *zap.Logger {
	logger, err := config.Default().NewLogger()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

func fromEnv() depot.Depot {
	cfg, err := config.FromEnv()
	if err != nil {
		logger := fallbackLogger()
		logger.Warn("invalid container environment, using defaults",
			zap.Bool("server_mode", cfg.ServerMode),
			zap.Error(err),
		)

		return depot.New(depot.WithServerMode(cfg.ServerMode), depot.WithLogger(logger))
	}

	c, err := cfg.NewContainer()
	if err != nil {
		logger := fallbackLogger()
		logger.Warn("invalid container log settings, using default logger", zap.Error(err))

		return depot.New(depot.WithServerMode(cfg.ServerMode), depot.WithLogger(logger))
	}

	return c
}
