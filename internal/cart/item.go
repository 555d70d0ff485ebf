package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/internal/catalog"
	"github.com/ballonsurprise/backend/pkg/enums"
)

// LineItem is one cart entry. Kind discriminates which of the two payloads is
// set: Bundle for predefined boxes, Custom for composed gifts. TotalPrice is
// frozen when the item enters the cart and never recomputed afterwards.
type LineItem struct {
	ID         uuid.UUID          `json:"id"`
	Kind       enums.LineItemKind `json:"kind"`
	Category   enums.Category     `json:"category"`
	TotalPrice int                `json:"totalPrice"`
	CreatedAt  time.Time          `json:"createdAt"`

	Bundle *BundleSnapshot  `json:"bundle,omitempty"`
	Custom *CustomSelection `json:"custom,omitempty"`
}

// BundleSnapshot copies the catalog bundle at add time so later catalog edits
// never touch carts.
type BundleSnapshot struct {
	BundleID    string   `json:"bundleId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Components  []string `json:"components"`
	UnitPrice   int      `json:"unitPrice"`
}

// CustomSelection records the resolved options of a composed gift.
type CustomSelection struct {
	Chocolates []catalog.Option `json:"chocolates"`
	Biscuits   []catalog.Option `json:"biscuits"`
	Rose       catalog.Option   `json:"rose"`
	Bear       bool             `json:"bear"`
}

// Cart is the device-scoped item list, stored as one JSON document.
type Cart struct {
	Items []LineItem `json:"items"`
}

// TotalPrice sums the frozen per-item totals.
func (c Cart) TotalPrice() int {
	total := 0
	for _, item := range c.Items {
		total += item.TotalPrice
	}
	return total
}

// ComponentTitles flattens a line item into the human-readable component list
// persisted with orders.
func (item LineItem) ComponentTitles() []string {
	switch {
	case item.Bundle != nil:
		return append([]string(nil), item.Bundle.Components...)
	case item.Custom != nil:
		out := make([]string, 0, len(item.Custom.Chocolates)+len(item.Custom.Biscuits)+2)
		for _, o := range item.Custom.Chocolates {
			out = append(out, o.Name)
		}
		for _, o := range item.Custom.Biscuits {
			out = append(out, o.Name)
		}
		out = append(out, item.Custom.Rose.Name)
		if item.Custom.Bear {
			out = append(out, "Nounours")
		}
		return out
	default:
		return nil
	}
}

// Title names the line item the way order history shows it.
func (item LineItem) Title() string {
	if item.Bundle != nil {
		return item.Bundle.Name
	}
	return "Cadeau personnalisé"
}
