package auth

import (
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	m := newTestJWTManager()
	other := NewJWTManager("different-secret", "notebrief-test", 24*time.Hour, time.Hour)

	userToken, _, err := m.SignUser("usr_abc123")
	if err != nil {
		t.Fatalf("SignUser: %v", err)
	}
	guestToken, _, err := m.SignGuest("sess-42")
	if err != nil {
		t.Fatalf("SignGuest: %v", err)
	}
	foreignToken, _, err := other.SignUser("usr_abc123")
	if err != nil {
		t.Fatalf("SignUser with other secret: %v", err)
	}

	tests := []struct {
		name      string
		token     string
		wantKind  IdentityKind
		wantOwner string
	}{
		{name: "empty token", token: "", wantKind: KindAnonymous, wantOwner: ""},
		{name: "garbage token", token: "xxx.yyy.zzz", wantKind: KindAnonymous, wantOwner: ""},
		{name: "wrong secret", token: foreignToken, wantKind: KindAnonymous, wantOwner: ""},
		{name: "user token", token: userToken, wantKind: KindAuthenticated, wantOwner: "usr_abc123"},
		{name: "guest token", token: guestToken, wantKind: KindGuest, wantOwner: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id := Resolve(tc.token, m)
			if id.Kind != tc.wantKind {
				t.Errorf("Kind = %q, want %q", id.Kind, tc.wantKind)
			}
			if id.OwnerID() != tc.wantOwner {
				t.Errorf("OwnerID() = %q, want %q", id.OwnerID(), tc.wantOwner)
			}
		})
	}
}

func TestResolveGuestCarriesSession(t *testing.T) {
	m := newTestJWTManager()

	token, expiresAt, err := m.SignGuest("sess-42")
	if err != nil {
		t.Fatalf("SignGuest: %v", err)
	}

	id := Resolve(token, m)
	if id.Kind != KindGuest {
		t.Fatalf("Kind = %q, want %q", id.Kind, KindGuest)
	}
	if id.SessionID != "sess-42" {
		t.Errorf("SessionID = %q, want %q", id.SessionID, "sess-42")
	}
	if id.ExpiresAt.Unix() != expiresAt.Unix() {
		t.Errorf("ExpiresAt = %v, want %v", id.ExpiresAt, expiresAt)
	}
	if id.IsAuthenticated() {
		t.Error("guest identity reports IsAuthenticated")
	}
}

func TestResolveUnknownRole(t *testing.T) {
	m := newTestJWTManager()

	token, _, err := m.sign("svc-1", "service", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if id := Resolve(token, m); id.Kind != KindAnonymous {
		t.Errorf("Kind = %q, want %q", id.Kind, KindAnonymous)
	}
}
