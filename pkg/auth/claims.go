package auth

import (
	"github.com/ballonsurprise/backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	LoginMethod enums.LoginMethod
	DeviceID    string
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID      uuid.UUID         `json:"user_id"`
	Email       string            `json:"email"`
	DisplayName string            `json:"display_name"`
	LoginMethod enums.LoginMethod `json:"login_method"`
	DeviceID    string            `json:"device_id,omitempty"`
	jwt.RegisteredClaims
}
