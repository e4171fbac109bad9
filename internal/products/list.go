package product

import (
	"strings"

	"github.com/paoquentinho/storefront/pkg/enums"
)

// ListFilters describe the supported filter knobs for the menu endpoint.
type ListFilters struct {
	Category *enums.ProductCategory `json:"category,omitempty"`
	Query    string                 `json:"q,omitempty"`
}

func (f ListFilters) matches(p Product) bool {
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func trim(value string) string {
	return strings.TrimSpace(value)
}
