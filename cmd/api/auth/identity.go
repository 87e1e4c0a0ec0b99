package auth

import "time"

// IdentityKind is the three-state outcome of credential resolution.
type IdentityKind string

const (
	KindAuthenticated IdentityKind = "authenticated"
	KindGuest         IdentityKind = "guest"
	KindAnonymous     IdentityKind = "anonymous"
)

// Identity is the resolved caller. Resolution never fails a request: a
// missing or invalid credential degrades to Anonymous.
type Identity struct {
	Kind IdentityKind

	// UserCode is set for authenticated users and is the owner key for
	// history records.
	UserCode string

	// SessionID and ExpiresAt are set for guest sessions.
	SessionID string
	ExpiresAt time.Time
}

// Anonymous is the zero-access identity.
var Anonymous = Identity{Kind: KindAnonymous}

// IsAuthenticated reports whether the identity owns persisted history.
func (i Identity) IsAuthenticated() bool {
	return i.Kind == KindAuthenticated
}

// OwnerID returns the owner key for store operations: the user code for
// authenticated users, empty otherwise.
func (i Identity) OwnerID() string {
	if i.Kind == KindAuthenticated {
		return i.UserCode
	}
	return ""
}

// Resolve maps a raw bearer token to an Identity. Pure: no I/O, no logging.
// Empty token resolves to Anonymous; a valid token resolves by its role
// claim; anything invalid or expired soft-fails to Anonymous.
func Resolve(token string, jwtm *JWTManager) Identity {
	if token == "" {
		return Anonymous
	}

	claims, err := jwtm.Parse(token)
	if err != nil {
		return Anonymous
	}

	switch claims.Role {
	case RoleUser:
		return Identity{Kind: KindAuthenticated, UserCode: claims.Subject}
	case RoleGuest:
		return Identity{Kind: KindGuest, SessionID: claims.Subject, ExpiresAt: claims.ExpiresAt}
	default:
		return Anonymous
	}
}
