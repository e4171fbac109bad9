package product

import (
	"context"
	"time"

	"github.com/paoquentinho/storefront/pkg/enums"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
)

// Service exposes read access to the static catalog.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Categories() []CategoryInfo
	CustomCake() CustomCakeCatalog
	ValidateCustomCake(opts CustomCakeOptions) error
}

// CustomCakeCatalog is everything a cake builder needs to render its form.
type CustomCakeCatalog struct {
	Product     Product       `json:"product"`
	Options     OptionCatalog `json:"options"`
	PickupSlots []string      `json:"pickupSlots"`
}

type service struct {
	byID  map[string]int
	clock func() time.Time
}

func NewService() Service {
	return newService(time.Now)
}

func newService(clock func() time.Time) *service {
	byID := make(map[string]int, len(catalog))
	for i, p := range catalog {
		byID[p.ID] = i
	}
	return &service{byID: byID, clock: clock}
}

// List returns matching products in catalog order.
func (s *service) List(ctx context.Context, filters ListFilters) ([]Product, error) {
	if filters.Category != nil && !filters.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	out := make([]Product, 0, len(catalog))
	for _, p := range catalog {
		if filters.matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	p := catalog[idx]
	return &p, nil
}

func (s *service) Categories() []CategoryInfo {
	cats := enums.ProductCategories()
	out := make([]CategoryInfo, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryInfo{ID: c, Name: c.DisplayName()})
	}
	return out
}

func (s *service) CustomCake() CustomCakeCatalog {
	return CustomCakeCatalog{
		Product:     catalog[s.byID[CustomCakeProductID]],
		Options:     Options(),
		PickupSlots: append([]string(nil), PickupSlots...),
	}
}

func (s *service) ValidateCustomCake(opts CustomCakeOptions) error {
	return ValidateCustomCake(opts, s.clock())
}
