package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"notebrief/config"
)

const facebookGraphBaseURL = "https://graph.facebook.com"

// FacebookVerifier validates Facebook access tokens with a debug_token round
// trip followed by a profile fetch.
type FacebookVerifier struct {
	appID      string
	appSecret  string
	baseURL    string
	httpClient *http.Client
}

// NewFacebookVerifierFromConfig reads the app id/secret used to build the
// app access token for debug_token.
func NewFacebookVerifierFromConfig() (*FacebookVerifier, error) {
	cfg := config.GetConfig()
	if cfg.FacebookAppID == "" || cfg.FacebookAppSecret == "" {
		return nil, fmt.Errorf("FACEBOOK_APP_ID and FACEBOOK_APP_SECRET are required")
	}
	return &FacebookVerifier{
		appID:      cfg.FacebookAppID,
		appSecret:  cfg.FacebookAppSecret,
		baseURL:    facebookGraphBaseURL,
		httpClient: http.DefaultClient,
	}, nil
}

// NewFacebookVerifier builds a verifier against a custom Graph endpoint.
// Used by tests with httptest servers.
func NewFacebookVerifier(appID, appSecret, baseURL string, client *http.Client) *FacebookVerifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &FacebookVerifier{appID: appID, appSecret: appSecret, baseURL: baseURL, httpClient: client}
}

type fbDebugTokenResponse struct {
	Data struct {
		AppID   string `json:"app_id"`
		IsValid bool   `json:"is_valid"`
		UserID  string `json:"user_id"`
	} `json:"data"`
}

type fbProfileResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

// Verify confirms the access token belongs to this app and a real user, then
// fetches the user's profile.
func (v *FacebookVerifier) Verify(ctx context.Context, accessToken string) (ProviderProfile, error) {
	debug, err := v.debugToken(ctx, accessToken)
	if err != nil {
		return ProviderProfile{}, err
	}
	if !debug.Data.IsValid || debug.Data.UserID == "" {
		return ProviderProfile{}, fmt.Errorf("facebook token is not valid")
	}
	if debug.Data.AppID != v.appID {
		return ProviderProfile{}, fmt.Errorf("facebook token belongs to a different app")
	}

	profile, err := v.fetchProfile(ctx, accessToken)
	if err != nil {
		return ProviderProfile{}, err
	}

	return ProviderProfile{
		Provider:   "facebook",
		ProviderID: debug.Data.UserID,
		Email:      profile.Email,
		Name:       profile.Name,
		Picture:    profile.Picture.Data.URL,
	}, nil
}

func (v *FacebookVerifier) debugToken(ctx context.Context, accessToken string) (*fbDebugTokenResponse, error) {
	q := url.Values{}
	q.Set("input_token", accessToken)
	q.Set("access_token", v.appID+"|"+v.appSecret)

	var out fbDebugTokenResponse
	if err := v.getJSON(ctx, v.baseURL+"/debug_token?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("facebook debug_token: %w", err)
	}
	return &out, nil
}

func (v *FacebookVerifier) fetchProfile(ctx context.Context, accessToken string) (*fbProfileResponse, error) {
	q := url.Values{}
	q.Set("fields", "id,name,email,picture")
	q.Set("access_token", accessToken)

	var out fbProfileResponse
	if err := v.getJSON(ctx, v.baseURL+"/me?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("facebook profile: %w", err)
	}
	return &out, nil
}

func (v *FacebookVerifier) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
