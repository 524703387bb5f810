package depot

import (
	"fmt"
	"reflect"
)

// Resolve with type safety.
func Resolve[T any](c Depot, id Identifier) (T, error) {
	var zero T

	instance, err := c.Resolve(id)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(Canonicalize(id).Name(), typeOf[T](), instance)
	}

	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](c Depot, id Identifier) T {
	instance, err := Resolve[T](c, id)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", Canonicalize(id).Name(), err))
	}

	return instance
}

// MustResolve resolves an untyped instance or panics.
func MustResolve(c Depot, id Identifier) any {
	instance, err := c.Resolve(id)
	if err != nil {
		panic(err)
	}

	return instance
}

// MustResolveAll resolves every id in order or panics.
func MustResolveAll(c Depot, ids ...Identifier) []any {
	instances, err := c.ResolveAll(ids...)
	if err != nil {
		panic(err)
	}

	return instances
}

// MustRegisterInstance registers a pre-built instance or panics on an
// invalid instance. It returns false for a duplicate key.
func MustRegisterInstance(c Depot, id Identifier, instance any) bool {
	ok, err := c.RegisterInstance(id, instance)
	if err != nil {
		panic(err)
	}

	return ok
}

// typeOf returns the name of T, including interface types.
func typeOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
