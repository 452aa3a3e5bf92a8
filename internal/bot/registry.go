package bot

import "sync"

// Factory creates a fresh Module instance.
type Factory func() Module

// Registry holds registered module factories.
type Registry struct {
	mu        sync.RWMutex
	factories []Factory
}

// NewRegistry creates a new module registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make([]Factory, 0),
	}
}

// Register adds a module factory to the registry.
func (r *Registry) Register(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = append(r.factories, f)
}

// Modules instantiates every registered module, in registration order.
// Each call returns new instances so separate bots never share module state.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, 0, len(r.factories))
	for _, f := range r.factories {
		result = append(result, f())
	}
	return result
}

// Global registry instance for module self-registration via init()
var globalRegistry = NewRegistry()

// Register adds a module factory to the global registry.
// This is typically called from module init() functions.
func Register(f Factory) {
	globalRegistry.Register(f)
}

// Modules instantiates all modules from the global registry.
func Modules() []Module {
	return globalRegistry.Modules()
}

// ResetGlobalRegistry resets the global registry.
// This is intended for testing purposes only.
func ResetGlobalRegistry() {
	globalRegistry = NewRegistry()
}
