package enums

import "fmt"

type ProductCategory string

const (
	ProductCategoryBread     ProductCategory = "paes"
	ProductCategorySnacks    ProductCategory = "lanches"
	ProductCategoryCakes     ProductCategory = "bolos"
	ProductCategorySavories  ProductCategory = "salgados"
	ProductCategoryBeverages ProductCategory = "bebidas"
)

var validProductCategories = []ProductCategory{
	ProductCategoryBread,
	ProductCategorySnacks,
	ProductCategoryCakes,
	ProductCategorySavories,
	ProductCategoryBeverages,
}

var productCategoryNames = map[ProductCategory]string{
	ProductCategoryBread:     "Pães",
	ProductCategorySnacks:    "Lanches",
	ProductCategoryCakes:     "Bolos",
	ProductCategorySavories:  "Salgados",
	ProductCategoryBeverages: "Bebidas",
}

func (c ProductCategory) String() string {
	return string(c)
}

func (c ProductCategory) IsValid() bool {
	_, ok := productCategoryNames[c]
	return ok
}

// DisplayName returns the storefront label for the category.
func (c ProductCategory) DisplayName() string {
	return productCategoryNames[c]
}

// ProductCategories returns every category in menu order.
func ProductCategories() []ProductCategory {
	return append([]ProductCategory(nil), validProductCategories...)
}

func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
