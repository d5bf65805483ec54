package catalog

import (
	"slices"
	"strings"
)

// Category is a product type. Canonical values are lowercase.
type Category string

const (
	CategoryGadget Category = "gadget"
	CategoryBook   Category = "book"
	CategoryFood   Category = "food"
	CategoryOther  Category = "other"
)

var categories = []Category{CategoryGadget, CategoryBook, CategoryFood, CategoryOther}

// Categories returns the canonical categories in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// ResolveCategory maps raw onto a category ignoring case. It never fails:
// unknown and empty input resolve to CategoryOther.
func ResolveCategory(raw string) Category {
	if c := Category(strings.ToLower(raw)); c.Valid() {
		return c
	}
	return CategoryOther
}

// Valid reports whether c is exactly one of the canonical categories.
func (c Category) Valid() bool {
	return slices.Contains(categories, c)
}

func allowedCategories() string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
