package depot

import (
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// resolution tracks the keys being built on the current call stack.
type resolution struct {
	path []Key
}

func (r *resolution) contains(key Key) bool {
	return slices.ContainsFunc(r.path, key.Equal)
}

func (r *resolution) push(key Key) {
	r.path = append(r.path, key)
}

func (r *resolution) pop() {
	r.path = r.path[:len(r.path)-1]
}

// chain returns the in-flight keys followed by key.
func (r *resolution) chain(key Key) []string {
	names := make([]string, 0, len(r.path)+1)
	for _, k := range r.path {
		names = append(names, k.Name())
	}

	return append(names, key.Name())
}

// resolve produces the instance for a canonical key.
func (c *container) resolve(key Key, res *resolution) (any, error) {
	e, ok := c.registry.get(key)
	if !ok {
		return nil, ErrUnknownDependency(key.Name())
	}

	// Pre-built instances are always returned as is. Constructed singletons
	// are reused only on clients; servers rebuild on every call.
	if instance := e.cached(); instance != nil {
		if e.constructor == nil || (e.singleton && !c.serverMode) {
			return instance, nil
		}
	}

	if res.contains(key) {
		return nil, ErrCyclicDependency(res.chain(key))
	}

	res.push(key)
	defer res.pop()

	instance, built, err := c.resolveInjections(e, res)
	if err != nil {
		return nil, err
	}

	if !built {
		instance, built, err = c.resolveRequires(e, res)
		if err != nil {
			return nil, err
		}
	}

	if !built || isNil(instance) {
		return nil, ErrUnknownDependency(key.Name())
	}

	e.store(instance)

	return instance, nil
}

// resolveKeys resolves keys in order within the current resolution.
func (c *container) resolveKeys(keys []Key, res *resolution) ([]any, error) {
	instances := make([]any, len(keys))

	for i, key := range keys {
		instance, err := c.resolve(key, res)
		if err != nil {
			return nil, err
		}

		instances[i] = instance
	}

	return instances, nil
}

func (c *container) resolveAll(ids []Identifier, res *resolution) ([]any, error) {
	keys := make([]Key, len(ids))
	for i, id := range ids {
		keys[i] = Canonicalize(id)
	}

	return c.resolveKeys(keys, res)
}

// resolveInjections builds the instance from the constructor's injection
// records. It reports built=false when the records do not apply.
func (c *container) resolveInjections(e *entry, res *resolution) (instance any, built bool, err error) {
	if e.constructor == nil {
		return nil, false, nil
	}

	records := c.registry.injectionsFor(e.constructor)
	if len(records) == 0 {
		return nil, false, nil
	}

	if len(e.requires) > 0 {
		// TODO: decide whether mixing requires with constructor injections
		// should fail registration instead of silently preferring requires.
		c.logger.Warn("provider declares requires and constructor injections, falling back to requires",
			zap.String("key", e.key.Name()),
			zap.Int("injections", len(records)),
			zap.Int("requires", len(e.requires)),
		)

		return nil, false, nil
	}

	if params := e.constructor.NumParams(); params != len(records) {
		c.logger.Warn("constructor injection count does not match constructor parameters",
			zap.String("key", e.key.Name()),
			zap.Int("injections", len(records)),
			zap.Int("params", params),
		)
	}

	args := make([]any, len(records))
	for i, rec := range records {
		args[i], err = c.resolveRecord(rec, res)
		if err != nil {
			return nil, false, err
		}
	}

	instance, err = e.constructor.invoke(e.key.Name(), args)
	if err != nil {
		return nil, false, err
	}

	for i, rec := range records {
		if rec.propertyKey == "" {
			continue
		}

		if err := assignProperty(instance, rec.propertyKey, args[i]); err != nil {
			c.logger.Warn("injected property cannot be assigned",
				zap.String("key", e.key.Name()),
				zap.String("property", rec.propertyKey),
				zap.Error(err),
			)
		}
	}

	return instance, true, nil
}

// resolveRecord resolves the dependency of one injection record. Clients
// reuse the value memoized on the record; servers always resolve again.
func (c *container) resolveRecord(rec *record, res *resolution) (any, error) {
	if !c.serverMode {
		rec.mu.Lock()
		memo := rec.instance
		rec.mu.Unlock()

		if memo != nil {
			return memo, nil
		}
	}

	instance, err := c.resolve(rec.requires, res)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	rec.instance = instance
	rec.mu.Unlock()

	return instance, nil
}

// resolveRequires builds the instance from the provider's requires list.
func (c *container) resolveRequires(e *entry, res *resolution) (any, bool, error) {
	if e.constructor == nil {
		return nil, false, nil
	}

	args, err := c.resolveKeys(e.requires, res)
	if err != nil {
		return nil, false, err
	}

	instance, err := e.constructor.invoke(e.key.Name(), args)
	if err != nil {
		return nil, false, err
	}

	return instance, true, nil
}

// assignProperty sets value on instance under name. Supported targets are
// pointers to structs (exported field by name, or `inject:"name"` tag) and
// string-keyed maps.
func assignProperty(instance any, name string, value any) error {
	rv := reflect.ValueOf(instance)

	switch {
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		if rv.IsNil() {
			return ErrTypeMismatch(name, "non-nil map", instance)
		}

		v, err := argValue(name, rv.Type().Elem(), value)
		if err != nil {
			return err
		}

		rv.SetMapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()), v)

		return nil

	case rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct:
		field, ok := settableField(rv.Elem(), name)
		if !ok {
			return ErrTypeMismatch(name, "settable field", instance)
		}

		v, err := argValue(name, field.Type(), value)
		if err != nil {
			return err
		}

		field.Set(v)

		return nil
	}

	return ErrTypeMismatch(name, "pointer to struct or map", instance)
}

func settableField(sv reflect.Value, name string) (reflect.Value, bool) {
	if field := sv.FieldByName(name); field.IsValid() && field.CanSet() {
		return field, true
	}

	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		if st.Field(i).Tag.Get("inject") != name {
			continue
		}

		if field := sv.Field(i); field.CanSet() {
			return field, true
		}
	}

	return reflect.Value{}, false
}
