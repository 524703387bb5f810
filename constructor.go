package depot

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Constructor is a construction recipe: a Go function invoked positionally
// with resolved dependencies. The *Constructor pointer is the identity that
// injection records attach to, so declare each function once and share the
// returned value. Build one with NewConstructor; the zero value is not a
// usable recipe and fails to invoke.
//
// Accepted shapes:
//
//	func(a A, b B) T
//	func(a A, b B) (T, error)
//	func(a A, rest ...R) T
type Constructor struct {
	fn       reflect.Value
	fnType   reflect.Type
	name     string
	hasError bool
}

// NewConstructor analyzes fn and wraps it as a construction recipe.
func NewConstructor(fn any) (*Constructor, error) {
	if fn == nil {
		return nil, ErrInvalidConstructor("constructor cannot be nil")
	}

	if ctor, ok := fn.(*Constructor); ok {
		if ctor == nil {
			return nil, ErrInvalidConstructor("constructor cannot be nil")
		}

		if !ctor.valid() {
			return nil, ErrInvalidConstructor("constructor was not built with NewConstructor")
		}

		return ctor, nil
	}

	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		return nil, ErrInvalidConstructor(fmt.Sprintf("constructor must be a function, got %T", fn))
	}

	if fnValue.IsNil() {
		return nil, ErrInvalidConstructor("constructor cannot be nil")
	}

	ctor := &Constructor{
		fn:     fnValue,
		fnType: fnType,
	}

	switch fnType.NumOut() {
	case 1:
		if fnType.Out(0) == errorType {
			return nil, ErrInvalidConstructor("constructor must return a non-error value")
		}
	case 2:
		if fnType.Out(1) != errorType {
			return nil, ErrInvalidConstructor("second return value must be error")
		}

		ctor.hasError = true
	default:
		return nil, ErrInvalidConstructor(fmt.Sprintf("constructor must return (T) or (T, error), got %d values", fnType.NumOut()))
	}

	ctor.name = fnType.Out(0).String()

	return ctor, nil
}

// MustConstructor is like NewConstructor but panics on an invalid function.
func MustConstructor(fn any) *Constructor {
	ctor, err := NewConstructor(fn)
	if err != nil {
		panic(err)
	}

	return ctor
}

// NumParams returns the declared parameter count. A variadic tail is not
// counted.
func (c *Constructor) NumParams() int {
	if !c.valid() {
		return 0
	}

	if c.fnType.IsVariadic() {
		return c.fnType.NumIn() - 1
	}

	return c.fnType.NumIn()
}

// ResultType returns the type of the produced instance.
func (c *Constructor) ResultType() reflect.Type {
	if !c.valid() {
		return nil
	}

	return c.fnType.Out(0)
}

// String returns the produced type name; it is also the default key for
// declarations that do not name one.
func (c *Constructor) String() string {
	if c == nil {
		return ""
	}

	return c.name
}

func (c *Constructor) valid() bool {
	return c != nil && c.fnType != nil
}

// invoke calls the function with args in order. Missing arguments are passed
// as zero values and surplus arguments are dropped unless the function is
// variadic.
func (c *Constructor) invoke(key string, args []any) (any, error) {
	if !c.valid() {
		return nil, ErrInvalidConstructor(fmt.Sprintf("constructor for '%s' was not built with NewConstructor", key))
	}

	fixed := c.NumParams()
	in := make([]reflect.Value, 0, max(fixed, len(args)))

	for i := 0; i < fixed; i++ {
		paramType := c.fnType.In(i)

		if i >= len(args) {
			in = append(in, reflect.Zero(paramType))

			continue
		}

		v, err := argValue(key, paramType, args[i])
		if err != nil {
			return nil, err
		}

		in = append(in, v)
	}

	if c.fnType.IsVariadic() {
		elemType := c.fnType.In(fixed).Elem()

		for i := fixed; i < len(args); i++ {
			v, err := argValue(key, elemType, args[i])
			if err != nil {
				return nil, err
			}

			in = append(in, v)
		}
	}

	out := c.fn.Call(in)

	if c.hasError && !out[1].IsNil() {
		return nil, ErrConstructorFailed(key, out[1].Interface().(error))
	}

	return out[0].Interface(), nil
}

// argValue adapts a resolved dependency to a parameter type.
func argValue(key string, paramType reflect.Type, arg any) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(paramType), nil
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(paramType) {
		return reflect.Value{}, ErrTypeMismatch(key, paramType.String(), arg)
	}

	return v, nil
}
