package enums

import "fmt"

// Category names the two gift occasions the catalog is split into.
type Category string

const (
	CategoryAnniversary Category = "anniversary"
	CategoryBirth       Category = "birth"
)

var validCategories = []Category{
	CategoryAnniversary,
	CategoryBirth,
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts the raw string to Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
