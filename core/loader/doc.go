// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and registers its routes when
// loaded. The Manager loads enabled features in registration order.
//
//	mgr := loader.NewManager(logger)
//	mgr.Register(validation.NewFeature(...))
//	if err := mgr.LoadAll(app); err != nil { ... }
package loader
