// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and is registered with a
// Manager, which loads every enabled feature onto the Fiber router.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The catalog, sync and integrity features are registered this way in cmd/start.go.
package loader
