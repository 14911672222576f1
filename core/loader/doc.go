// Package loader provides the plugin-like feature loading system.
//
// Each feature (roles, rules, wallet, integrity) implements Feature and is
// registered with a Manager, which loads the enabled ones in registration
// order. A feature disables itself when a dependency it needs, such as the
// database, is not available, so the service still starts with the rest.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
