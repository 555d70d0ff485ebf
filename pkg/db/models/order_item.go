package models

import (
	"time"

	"github.com/ballonsurprise/backend/pkg/enums"
	"github.com/google/uuid"
)

// OrderItem freezes one cart line item at the moment of checkout. The
// component list is a denormalized snapshot so later catalog edits never
// rewrite order history.
type OrderItem struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID          `gorm:"column:order_id;type:uuid;not null;index"`
	Kind       enums.LineItemKind `gorm:"column:kind;type:text;not null"`
	Category   enums.Category     `gorm:"column:category;type:text;not null"`
	Title      string             `gorm:"column:title;type:text;not null"`
	Components []string           `gorm:"column:components;type:jsonb;serializer:json"`
	TotalPrice int                `gorm:"column:total_price;not null"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
}
