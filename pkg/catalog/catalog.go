// Package catalog provides lookup of priced external resources. The runtime
// treats catalog records as opaque beyond id, name, price, and input schema.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/paygrid/paygrid/pkg/models"
)

// ErrResourceNotFound is returned when no catalog entry has the given id.
var ErrResourceNotFound = errors.New("resource not found in catalog")

// Catalog looks up priced resources by id.
type Catalog interface {
	Resource(ctx context.Context, id string) (*models.ResourceRef, error)
	Resources(ctx context.Context) ([]*models.ResourceRef, error)
}

// Static is an in-memory catalog, used in tests and for fixture-backed
// deployments.
type Static struct {
	byID  map[string]*models.ResourceRef
	order []string
}

func NewStatic(refs ...*models.ResourceRef) *Static {
	static := &Static{byID: make(map[string]*models.ResourceRef, len(refs))}

	for _, ref := range refs {
		if _, exists := static.byID[ref.ID]; !exists {
			static.order = append(static.order, ref.ID)
		}

		static.byID[ref.ID] = ref
	}

	return static
}

func (s *Static) Resource(_ context.Context, id string) (*models.ResourceRef, error) {
	ref, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, id)
	}

	return ref, nil
}

func (s *Static) Resources(_ context.Context) ([]*models.ResourceRef, error) {
	refs := make([]*models.ResourceRef, 0, len(s.order))
	for _, id := range s.order {
		refs = append(refs, s.byID[id])
	}

	return refs, nil
}
