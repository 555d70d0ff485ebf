package models

import (
	"time"

	"github.com/ballonsurprise/backend/pkg/enums"
	"github.com/google/uuid"
)

// User is the durable account record behind a session identity.
type User struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string            `gorm:"type:text;not null;uniqueIndex"`
	DisplayName  string            `gorm:"column:display_name;not null"`
	LoginMethod  enums.LoginMethod `gorm:"column:login_method;type:text;not null"`
	PasswordHash *string           `gorm:"column:password_hash"`
	LastLoginAt  *time.Time        `gorm:"column:last_login_at"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
