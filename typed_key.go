package depot

// TypedKey is a key that also carries the type of the instance it provides.
// Typed keys with the same name address the same provider, whatever T is.
type TypedKey[T any] struct {
	name string
}

// NewTypedKey creates a new typed key.
//
// Example:
//
//	var DatabaseKey = depot.NewTypedKey[*Database]("database")
//	var UserServiceKey = depot.NewTypedKey[*UserService]("userService")
func NewTypedKey[T any](name string) TypedKey[T] {
	return TypedKey[T]{name: name}
}

// Key implements Identifier.
func (k TypedKey[T]) Key() Key {
	return For(k.name)
}

// Name returns the string name of the key.
func (k TypedKey[T]) Name() string {
	return k.name
}

// ResolveWithKey resolves a provider using a typed key.
//
// Example:
//
//	db, err := depot.ResolveWithKey(c, DatabaseKey)
func ResolveWithKey[T any](c Depot, key TypedKey[T]) (T, error) {
	return Resolve[T](c, key)
}

// MustWithKey resolves a provider using a typed key and panics on error.
func MustWithKey[T any](c Depot, key TypedKey[T]) T {
	return Must[T](c, key)
}

// HasKey checks if a provider is registered using a typed key.
func HasKey[T any](c Depot, key TypedKey[T]) bool {
	return c.Has(key)
}

// RegisterInstanceWithKey registers a pre-built instance under a typed key.
func RegisterInstanceWithKey[T any](c Depot, key TypedKey[T], instance T) (bool, error) {
	return c.RegisterInstance(key, instance)
}

// InspectKey returns diagnostic information about a provider using a typed key.
func InspectKey[T any](c Depot, key TypedKey[T]) ProviderInfo {
	return c.Inspect(key)
}
