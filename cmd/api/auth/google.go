package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"notebrief/config"
)

// ProviderProfile is the identity a provider vouches for after verification.
type ProviderProfile struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
	Picture    string
}

// GoogleVerifier validates Google ID tokens against Google's public keys.
type GoogleVerifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewGoogleVerifierFromConfig reads the OAuth client id from config; it is
// the expected token audience.
func NewGoogleVerifierFromConfig() (*GoogleVerifier, error) {
	cfg := config.GetConfig()
	if cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("GOOGLE_OAUTH_CLIENT_ID is required")
	}
	return &GoogleVerifier{clientID: cfg.GoogleClientID, validate: idtoken.Validate}, nil
}

// NewGoogleVerifier builds a verifier with an injected validate function.
// Used by tests.
func NewGoogleVerifier(clientID string, validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: validate}
}

// Verify checks the ID token's signature, expiry and audience, and maps the
// claims to a provider profile.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (ProviderProfile, error) {
	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return ProviderProfile{}, fmt.Errorf("google id token: %w", err)
	}

	claimString := func(key string) string {
		s, _ := payload.Claims[key].(string)
		return s
	}

	sub := payload.Subject
	if sub == "" {
		sub = claimString("sub")
	}
	if sub == "" {
		return ProviderProfile{}, fmt.Errorf("google id token: missing sub claim")
	}

	return ProviderProfile{
		Provider:   "google",
		ProviderID: sub,
		Email:      claimString("email"),
		Name:       claimString("name"),
		Picture:    claimString("picture"),
	}, nil
}
