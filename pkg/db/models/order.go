package models

import (
	"time"

	"github.com/ballonsurprise/backend/pkg/enums"
	"github.com/google/uuid"
)

// Order is a confirmed checkout with its payment snapshot.
type Order struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	DeviceID      string              `gorm:"column:device_id;type:text;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'confirmed'"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	PhoneNumber   string              `gorm:"column:phone_number;type:text;not null"`
	PaymentRef    string              `gorm:"column:payment_ref;type:text;not null"`
	TotalPrice    int                 `gorm:"column:total_price;not null"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
