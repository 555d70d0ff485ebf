package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"

	"github.com/ballonsurprise/backend/pkg/config"
	"github.com/ballonsurprise/backend/pkg/enums"
)

const facebookProfileURL = "https://graph.facebook.com/me?fields=name,email"

// FacebookProvider exchanges Facebook authorization codes for a profile.
type FacebookProvider struct {
	oauth *oauth2.Config
}

func NewFacebookProvider(cfg config.ProvidersConfig) *FacebookProvider {
	return &FacebookProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.FacebookClientID,
			ClientSecret: cfg.FacebookClientSecret,
			RedirectURL:  cfg.FacebookRedirectURL,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
	}
}

func (p *FacebookProvider) Method() enums.LoginMethod {
	return enums.LoginMethodFacebook
}

func (p *FacebookProvider) Exchange(ctx context.Context, code string) (*ProviderProfile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange facebook code: %w", err)
	}

	resp, err := p.oauth.Client(ctx, token).Get(facebookProfileURL)
	if err != nil {
		return nil, fmt.Errorf("fetch facebook profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook profile status %d", resp.StatusCode)
	}

	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode facebook profile: %w", err)
	}
	if payload.Email == "" {
		return nil, fmt.Errorf("facebook profile missing email")
	}

	return &ProviderProfile{Email: payload.Email, DisplayName: payload.Name}, nil
}
