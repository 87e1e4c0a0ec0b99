package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notebrief/cmd/api/auth"
	"notebrief/cmd/internal/logger"
	"notebrief/models"
	"notebrief/repositories"
)

var (
	ErrUnknownProvider       = errors.New("unknown provider")
	ErrProviderNotConfigured = errors.New("provider not configured")
	ErrUserNotFound          = errors.New("user not found")
)

// knownProviders are the providers this service can verify when configured.
var knownProviders = map[string]bool{
	"google":   true,
	"facebook": true,
}

// ProviderVerifier validates one provider's credential and returns the
// profile it vouches for.
type ProviderVerifier interface {
	Verify(ctx context.Context, token string) (auth.ProviderProfile, error)
}

// UserStore is the slice of the user repository the service needs.
type UserStore interface {
	UpsertByProvider(ctx context.Context, provider, providerID, email, name, picture string) (*models.User, error)
	FindByCode(ctx context.Context, userCode string) (*models.User, error)
}

type AuthService struct {
	verifiers map[string]ProviderVerifier
	users     UserStore
	jwtm      *auth.JWTManager
}

func NewAuthService(verifiers map[string]ProviderVerifier, users UserStore, jwtm *auth.JWTManager) *AuthService {
	return &AuthService{verifiers: verifiers, users: users, jwtm: jwtm}
}

// NewAuthServiceFromConfig wires the google and facebook verifiers. A
// provider whose settings are absent is simply left unconfigured; a
// construction failure is logged so a broken setting never fails silently.
func NewAuthServiceFromConfig(users *repositories.UserRepository) (*AuthService, error) {
	jwtm, err := auth.NewJWTManagerFromConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to init JWTManager: %w", err)
	}

	verifiers := map[string]ProviderVerifier{}

	if google, err := auth.NewGoogleVerifierFromConfig(); err == nil {
		verifiers["google"] = google
	} else {
		logger.WarnWithFields("google verifier not configured", logger.Fields{
			"error": err.Error(),
		})
	}
	if facebook, err := auth.NewFacebookVerifierFromConfig(); err == nil {
		verifiers["facebook"] = facebook
	} else {
		logger.WarnWithFields("facebook verifier not configured", logger.Fields{
			"error": err.Error(),
		})
	}

	return NewAuthService(verifiers, users, jwtm), nil
}

// JWTManager exposes the token manager for identity middleware.
func (s *AuthService) JWTManager() *auth.JWTManager {
	return s.jwtm
}

// VerifyProvider validates a provider credential, upserts the user profile
// and issues a self-signed access token.
func (s *AuthService) VerifyProvider(ctx context.Context, provider, token string) (*models.User, string, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		if knownProviders[provider] {
			return nil, "", ErrProviderNotConfigured
		}
		return nil, "", ErrUnknownProvider
	}

	profile, err := verifier.Verify(ctx, token)
	if err != nil {
		return nil, "", fmt.Errorf("%s verification: %w", provider, err)
	}

	user, err := s.users.UpsertByProvider(ctx, profile.Provider, profile.ProviderID, profile.Email, profile.Name, profile.Picture)
	if err != nil {
		return nil, "", fmt.Errorf("user upsert: %w", err)
	}

	accessToken, _, err := s.jwtm.SignUser(user.UserCode)
	if err != nil {
		return nil, "", fmt.Errorf("jwt sign: %w", err)
	}

	return user, accessToken, nil
}

// IssueGuest creates an ephemeral guest session token. Nothing is persisted.
func (s *AuthService) IssueGuest() (string, string, time.Time, error) {
	sessionID := uuid.NewString()
	token, expiresAt, err := s.jwtm.SignGuest(sessionID)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("jwt sign: %w", err)
	}
	return token, sessionID, expiresAt, nil
}

// GetProfile loads the profile behind a user_code.
func (s *AuthService) GetProfile(ctx context.Context, userCode string) (*models.User, error) {
	user, err := s.users.FindByCode(ctx, userCode)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
