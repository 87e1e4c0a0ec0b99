package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/idtoken"
)

func TestGoogleVerify(t *testing.T) {
	v := NewGoogleVerifier("client-id-1", func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good-token" {
			return nil, errors.New("invalid token")
		}
		if audience != "client-id-1" {
			return nil, errors.New("wrong audience")
		}
		return &idtoken.Payload{
			Subject: "google-uid-9",
			Claims: map[string]interface{}{
				"email":   "ada@example.com",
				"name":    "Ada Lovelace",
				"picture": "https://example.com/ada.png",
			},
		}, nil
	})

	profile, err := v.Verify(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if profile.Provider != "google" {
		t.Errorf("Provider = %q, want %q", profile.Provider, "google")
	}
	if profile.ProviderID != "google-uid-9" {
		t.Errorf("ProviderID = %q, want %q", profile.ProviderID, "google-uid-9")
	}
	if profile.Email != "ada@example.com" {
		t.Errorf("Email = %q, want %q", profile.Email, "ada@example.com")
	}

	if _, err := v.Verify(context.Background(), "bad-token"); err == nil {
		t.Error("Verify accepted a rejected token")
	}
}

func TestGoogleVerifyMissingSubject(t *testing.T) {
	v := NewGoogleVerifier("client-id-1", func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Claims: map[string]interface{}{"email": "x@example.com"}}, nil
	})

	if _, err := v.Verify(context.Background(), "token"); err == nil {
		t.Error("Verify accepted a payload without a subject")
	}
}

func newFakeGraph(t *testing.T, appID string, isValid bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/debug_token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "app-1|secret-1" {
			http.Error(w, "bad app token", http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"data":{"app_id":%q,"is_valid":%t,"user_id":"fb-uid-7"}}`, appID, isValid)
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "user-token" {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"id":"fb-uid-7","name":"Grace Hopper","email":"grace@example.com","picture":{"data":{"url":"https://example.com/grace.png"}}}`)
	})
	return httptest.NewServer(mux)
}

func TestFacebookVerify(t *testing.T) {
	srv := newFakeGraph(t, "app-1", true)
	defer srv.Close()

	v := NewFacebookVerifier("app-1", "secret-1", srv.URL, srv.Client())

	profile, err := v.Verify(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if profile.Provider != "facebook" {
		t.Errorf("Provider = %q, want %q", profile.Provider, "facebook")
	}
	if profile.ProviderID != "fb-uid-7" {
		t.Errorf("ProviderID = %q, want %q", profile.ProviderID, "fb-uid-7")
	}
	if profile.Name != "Grace Hopper" {
		t.Errorf("Name = %q, want %q", profile.Name, "Grace Hopper")
	}
	if profile.Picture != "https://example.com/grace.png" {
		t.Errorf("Picture = %q", profile.Picture)
	}
}

func TestFacebookVerifyInvalidToken(t *testing.T) {
	srv := newFakeGraph(t, "app-1", false)
	defer srv.Close()

	v := NewFacebookVerifier("app-1", "secret-1", srv.URL, srv.Client())

	if _, err := v.Verify(context.Background(), "user-token"); err == nil {
		t.Error("Verify accepted an invalid token")
	}
}

func TestFacebookVerifyWrongApp(t *testing.T) {
	srv := newFakeGraph(t, "some-other-app", true)
	defer srv.Close()

	v := NewFacebookVerifier("app-1", "secret-1", srv.URL, srv.Client())

	if _, err := v.Verify(context.Background(), "user-token"); err == nil {
		t.Error("Verify accepted a token issued for a different app")
	}
}
