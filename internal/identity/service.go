package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/internal/users"
	pkgAuth "github.com/ballonsurprise/backend/pkg/auth"
	"github.com/ballonsurprise/backend/pkg/auth/session"
	"github.com/ballonsurprise/backend/pkg/config"
	"github.com/ballonsurprise/backend/pkg/db/models"
	"github.com/ballonsurprise/backend/pkg/enums"
	pkgerrors "github.com/ballonsurprise/backend/pkg/errors"
	"github.com/ballonsurprise/backend/pkg/logger"
	"github.com/ballonsurprise/backend/pkg/security"
)

const oauthAccessDenied = "access_denied"

// Service defines the behavior needed by the auth controller.
type Service interface {
	LoginWithCredential(ctx context.Context, deviceID string, req CredentialLoginRequest) (*LoginResponse, error)
	LoginWithProvider(ctx context.Context, deviceID string, method enums.LoginMethod, req ProviderLoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, deviceID, accessID string) error
	Current(ctx context.Context, deviceID string) (*Identity, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*RefreshResponse, error)
}

type userRepository interface {
	Upsert(ctx context.Context, dto users.UpsertUserDTO) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	users       userRepository
	slots       SlotStore
	session     sessionManager
	providers   map[enums.LoginMethod]Provider
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

// ServiceParams bundles the dependencies required to build the session service.
type ServiceParams struct {
	UserRepo       userRepository
	SlotStore      SlotStore
	SessionManager sessionManager
	Providers      []Provider
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
}

// NewService constructs the session service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SlotStore == nil {
		return nil, fmt.Errorf("slot store is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	providers := make(map[enums.LoginMethod]Provider, len(params.Providers))
	for _, p := range params.Providers {
		if p == nil {
			continue
		}
		providers[p.Method()] = p
	}

	return &service{
		users:       params.UserRepo,
		slots:       params.SlotStore,
		session:     params.SessionManager,
		providers:   providers,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
	}, nil
}

// LoginWithCredential runs the stub credential flow: any non-empty pair is
// accepted and the display name falls back to the email's local part.
func (s *service) LoginWithCredential(ctx context.Context, deviceID string, req CredentialLoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.establish(ctx, deviceID, users.UpsertUserDTO{
		Email:        email,
		DisplayName:  displayNameFromEmail(email),
		LoginMethod:  enums.LoginMethodEmail,
		PasswordHash: &hash,
	})
}

// LoginWithProvider delegates authentication to the named provider and
// persists the returned profile exactly like a credential login.
func (s *service) LoginWithProvider(ctx context.Context, deviceID string, method enums.LoginMethod, req ProviderLoginRequest) (*LoginResponse, error) {
	if !method.IsDelegated() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown login provider")
	}
	provider, ok := s.providers[method]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown login provider")
	}

	if req.Error == oauthAccessDenied || (req.Error == "" && strings.TrimSpace(req.Code) == "") {
		return nil, pkgerrors.New(pkgerrors.CodeCancelled, "login cancelled")
	}
	if req.Error != "" {
		return nil, pkgerrors.New(pkgerrors.CodeProvider, fmt.Sprintf("provider returned %q", req.Error))
	}

	profile, err := provider.Exchange(ctx, req.Code)
	if err != nil {
		if errors.Is(err, ErrLoginCancelled) {
			return nil, pkgerrors.New(pkgerrors.CodeCancelled, "login cancelled")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeProvider, err, fmt.Sprintf("%s login failed", method))
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	displayName := strings.TrimSpace(profile.DisplayName)
	if displayName == "" {
		displayName = displayNameFromEmail(email)
	}

	return s.establish(ctx, deviceID, users.UpsertUserDTO{
		Email:       email,
		DisplayName: displayName,
		LoginMethod: method,
	})
}

// Logout clears the device slot and revokes the refresh session. Both steps
// tolerate an already-empty state so repeated logouts succeed.
func (s *service) Logout(ctx context.Context, deviceID, accessID string) error {
	if err := s.slots.Clear(ctx, deviceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "clear device identity")
	}
	if accessID != "" {
		if err := s.session.Revoke(ctx, accessID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "revoke session")
		}
	}
	return nil
}

// Current reads the device slot. A storage failure is logged and reported as
// "no identity": the caller sees a logged-out device, never an error page.
func (s *service) Current(ctx context.Context, deviceID string) (*Identity, error) {
	id, err := s.slots.Load(ctx, deviceID)
	if err != nil {
		s.logg.Error(s.logg.WithDeviceID(ctx, deviceID), "identity hydration failed, treating as logged out", err)
		return nil, nil
	}
	return id, nil
}

// Refresh validates the expired access token, rotates the refresh session and
// mints a fresh pair for the same identity.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*RefreshResponse, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "rotate session")
	}

	newAccessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:      claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		LoginMethod: claims.LoginMethod,
		DeviceID:    claims.DeviceID,
		JTI:         newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &RefreshResponse{AccessToken: newAccessToken, RefreshToken: newRefresh}, nil
}

func (s *service) establish(ctx context.Context, deviceID string, dto users.UpsertUserDTO) (*LoginResponse, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	if dto.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.users.Upsert(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist account")
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "update last login")
	}

	id := Identity{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		LoginMethod: dto.LoginMethod,
		LoggedInAt:  now,
	}
	// Single write: a re-login replaces the previous identity atomically.
	if err := s.slots.Save(ctx, deviceID, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist device identity")
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		LoginMethod: dto.LoginMethod,
		DeviceID:    deviceID,
		JTI:         accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "store refresh token")
	}

	return &LoginResponse{
		Identity:     id,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func displayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
