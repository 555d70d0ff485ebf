package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/pkg/enums"
)

// Identity is the authenticated profile held in a device session slot.
type Identity struct {
	UserID      uuid.UUID         `json:"userId"`
	Email       string            `json:"email"`
	DisplayName string            `json:"displayName"`
	LoginMethod enums.LoginMethod `json:"loginMethod"`
	LoggedInAt  time.Time         `json:"loggedInAt"`
}

// CredentialLoginRequest is the payload for the stub credential flow.
type CredentialLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProviderLoginRequest carries the outcome of the delegated provider's
// consent screen. Error is set when the provider redirected back with an
// OAuth error instead of a code.
type ProviderLoginRequest struct {
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

// LoginResponse is returned by every successful login variant.
type LoginResponse struct {
	Identity     Identity `json:"identity"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// RefreshResponse carries the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
