package identity

import (
	"context"
	"errors"

	"github.com/ballonsurprise/backend/pkg/enums"
)

// ErrLoginCancelled signals that the person backed out of the provider's
// consent screen rather than the exchange failing.
var ErrLoginCancelled = errors.New("login cancelled")

// ProviderProfile is the minimal profile a delegated provider hands back.
type ProviderProfile struct {
	Email       string
	DisplayName string
}

// Provider performs the authorization-code exchange and profile fetch for one
// delegated identity provider.
type Provider interface {
	Method() enums.LoginMethod
	Exchange(ctx context.Context, code string) (*ProviderProfile, error)
}
