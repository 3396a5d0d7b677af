package enums

import (
	"fmt"
	"strings"
)

// ProductCategory is one of the craft categories offered by the shop filter.
type ProductCategory string

const (
	ProductCategoryVase     ProductCategory = "vase"
	ProductCategoryPainting ProductCategory = "painting"
	ProductCategoryTextile  ProductCategory = "textile"
	ProductCategoryWeapon   ProductCategory = "weapon"
	ProductCategoryWoodwork ProductCategory = "woodwork"
)

var validProductCategories = []ProductCategory{
	ProductCategoryVase,
	ProductCategoryPainting,
	ProductCategoryTextile,
	ProductCategoryWeapon,
	ProductCategoryWoodwork,
}

// ProductCategories returns the categories in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// Label is the dropdown caption, e.g. "Woodwork".
func (c ProductCategory) Label() string {
	if c == "" {
		return "All Categories"
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
