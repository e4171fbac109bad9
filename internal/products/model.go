package product

import (
	"github.com/paoquentinho/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is immutable catalog data.
type Product struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          decimal.Decimal       `json:"price"`
	Image          string                `json:"image"`
	Category       enums.ProductCategory `json:"category"`
	IsCustomizable bool                  `json:"isCustomizable,omitempty"`
	IsAvailable    bool                  `json:"isAvailable"`
	IsReadyToTake  bool                  `json:"isReadyToTake"`
}

// CustomCakeOptions holds the selections made for a customizable cake. The
// three option fields are ids into the priced-option catalog.
type CustomCakeOptions struct {
	Massa      string `json:"massa"`
	Recheio    string `json:"recheio"`
	Cobertura  string `json:"cobertura"`
	PickupDate string `json:"pickupDate,omitempty"`
	PickupTime string `json:"pickupTime,omitempty"`
}

// Equal compares two option sets field by field. Nil only equals nil.
func (o *CustomCakeOptions) Equal(other *CustomCakeOptions) bool {
	if o == nil || other == nil {
		return o == nil && other == nil
	}
	return *o == *other
}

// Clone returns a deep copy; nil stays nil.
func (o *CustomCakeOptions) Clone() *CustomCakeOptions {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

// OptionChoice is one selectable value on a customization axis.
type OptionChoice struct {
	Value string          `json:"value"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// OptionCatalog lists the choices on each customization axis.
type OptionCatalog struct {
	Massa     []OptionChoice `json:"massa"`
	Recheio   []OptionChoice `json:"recheio"`
	Cobertura []OptionChoice `json:"cobertura"`
}

// CategoryInfo pairs a category with its menu label.
type CategoryInfo struct {
	ID   enums.ProductCategory `json:"id"`
	Name string                `json:"name"`
}
