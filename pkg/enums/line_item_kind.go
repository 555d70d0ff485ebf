package enums

import "fmt"

// LineItemKind discriminates the two cart line item shapes.
type LineItemKind string

const (
	LineItemKindPredefined LineItemKind = "predefined"
	LineItemKindCustom     LineItemKind = "custom"
)

var validLineItemKinds = []LineItemKind{
	LineItemKindPredefined,
	LineItemKindCustom,
}

// IsValid reports whether the value is a known LineItemKind.
func (k LineItemKind) IsValid() bool {
	for _, candidate := range validLineItemKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseLineItemKind converts the raw string to LineItemKind.
func ParseLineItemKind(value string) (LineItemKind, error) {
	for _, candidate := range validLineItemKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line item kind %q", value)
}
