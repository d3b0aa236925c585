package admin

import (
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
)

// Registry holds all admin resources, keyed by their URL slug
type Registry struct {
	resources map[string]Resource
	order     []string
}

// NewRegistry builds a registry from resources, preserving their order for
// the backend's navigation.
func NewRegistry(resources ...Resource) *Registry {
	registry := &Registry{resources: make(map[string]Resource, len(resources))}
	for _, resource := range resources {
		name := resource.Meta().Name
		registry.resources[name] = resource
		registry.order = append(registry.order, name)
	}
	return registry
}

// Get looks up a resource by slug
func (r *Registry) Get(name string) (Resource, error) {
	resource, ok := r.resources[name]
	if !ok {
		return nil, apperrors.ErrUnknownResource
	}
	return resource, nil
}

// All returns every resource in registration order
func (r *Registry) All() []Resource {
	all := make([]Resource, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.resources[name])
	}
	return all
}
