package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/pkg/db/models"
	"github.com/ballonsurprise/backend/pkg/enums"
)

// OrderDTO is the order history transport shape.
type OrderDTO struct {
	ID            uuid.UUID           `json:"id"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	PhoneNumber   string              `json:"phoneNumber"`
	PaymentRef    string              `json:"paymentRef"`
	TotalPrice    int                 `json:"totalPrice"`
	Items         []OrderItemDTO      `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// OrderItemDTO mirrors one frozen line item of an order.
type OrderItemDTO struct {
	ID         uuid.UUID          `json:"id"`
	Kind       enums.LineItemKind `json:"kind"`
	Category   enums.Category     `json:"category"`
	Title      string             `json:"title"`
	Components []string           `json:"components"`
	TotalPrice int                `json:"totalPrice"`
}

// ListResult is one page of order history.
type ListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

func fromModel(o *models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ID:         item.ID,
			Kind:       item.Kind,
			Category:   item.Category,
			Title:      item.Title,
			Components: append([]string(nil), item.Components...),
			TotalPrice: item.TotalPrice,
		})
	}
	return OrderDTO{
		ID:            o.ID,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PhoneNumber:   o.PhoneNumber,
		PaymentRef:    o.PaymentRef,
		TotalPrice:    o.TotalPrice,
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}
