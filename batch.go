package depot

import "go.uber.org/multierr"

// Declaration is one provider declaration applied by Declare.
type Declaration struct {
	key         Identifier
	instance    any
	constructor any
	options     []InjectableOption
}

// Instance declares a pre-built instance for batch registration.
func Instance(id Identifier, instance any) Declaration {
	return Declaration{
		key:      id,
		instance: instance,
	}
}

// Constructed declares a constructor for batch registration. The key, when
// not nil, is passed as Provides.
func Constructed(id Identifier, constructor any, opts ...InjectableOption) Declaration {
	return Declaration{
		key:         id,
		constructor: constructor,
		options:     opts,
	}
}

// Declare registers every declaration in order. Invalid declarations do not
// stop the batch; all of their errors are returned together. Duplicates are
// not errors.
//
// Example:
//
//	err := depot.Declare(c,
//	    depot.Instance(depot.Name("config"), cfg),
//	    depot.Constructed(depot.Name("db"), NewDatabase, depot.Requires(depot.Name("config"))),
//	    depot.Constructed(depot.Name("users"), NewUserService, depot.AsTransient()),
//	)
func Declare(c Depot, decls ...Declaration) error {
	var errs error

	for _, decl := range decls {
		if decl.constructor == nil {
			if _, err := c.RegisterInstance(decl.key, decl.instance); err != nil {
				errs = multierr.Append(errs, err)
			}

			continue
		}

		opts := decl.options
		if decl.key != nil {
			opts = append([]InjectableOption{Provides(decl.key)}, opts...)
		}

		if _, err := Injectable(c, decl.constructor, opts...); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}
