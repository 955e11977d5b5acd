package core

import (
	"fmt"

	"camPark/internal/domain"
	"camPark/pkg/e"
)

// Registry is the fixed, ordered set of zones the core operates on.
// It is read-only after construction.
type Registry struct {
	ordered []domain.Zone
	byCode  map[string]domain.Zone
}

func NewRegistry(zones []domain.Zone) *Registry {
	r := &Registry{
		ordered: make([]domain.Zone, len(zones)),
		byCode:  make(map[string]domain.Zone, len(zones)),
	}
	copy(r.ordered, zones)
	for _, z := range r.ordered {
		r.byCode[z.Code] = z
	}
	return r
}

// All returns zones in registry order. Callers must not mutate the slice.
func (r *Registry) All() []domain.Zone {
	return r.ordered
}

func (r *Registry) Get(code string) (domain.Zone, error) {
	z, ok := r.byCode[code]
	if !ok {
		return domain.Zone{}, fmt.Errorf("registry.Get %q: %w", code, e.ErrUnknownZone)
	}
	return z, nil
}

func (r *Registry) Has(code string) bool {
	_, ok := r.byCode[code]
	return ok
}

func (r *Registry) Len() int {
	return len(r.ordered)
}
