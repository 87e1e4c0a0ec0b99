package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"notebrief/config"
)

const (
	RoleUser  = "user"
	RoleGuest = "guest"
)

// Claims are the verified contents of a self-issued token.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// JWTManager signs and verifies self-issued tokens with a single HS256
// secret. Registered users get long-lived tokens, guests short-lived ones.
type JWTManager struct {
	secret   []byte
	issuer   string
	userTTL  time.Duration
	guestTTL time.Duration
}

// NewJWTManagerFromConfig builds a JWTManager from the application config.
// JWT_SECRET must be set; TTLs fall back to 24h for users and 1h for guests.
func NewJWTManagerFromConfig() (*JWTManager, error) {
	cfg := config.GetConfig()
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	userTTL := time.Duration(cfg.Auth.UserTokenTTLMinutes) * time.Minute
	if userTTL <= 0 {
		userTTL = 24 * time.Hour
	}
	guestTTL := time.Duration(cfg.Auth.GuestTokenTTLMinutes) * time.Minute
	if guestTTL <= 0 {
		guestTTL = time.Hour
	}

	return &JWTManager{
		secret:   []byte(cfg.JWTSecret),
		issuer:   "notebrief",
		userTTL:  userTTL,
		guestTTL: guestTTL,
	}, nil
}

// NewJWTManager builds a JWTManager with explicit values. Used by tests.
func NewJWTManager(secret, issuer string, userTTL, guestTTL time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), issuer: issuer, userTTL: userTTL, guestTTL: guestTTL}
}

// SignUser issues a token for a registered user's user_code.
func (m *JWTManager) SignUser(userCode string) (string, time.Time, error) {
	return m.sign(userCode, RoleUser, m.userTTL)
}

// SignGuest issues a short-lived token for a guest session id.
func (m *JWTManager) SignGuest(sessionID string) (string, time.Time, error) {
	return m.sign(sessionID, RoleGuest, m.guestTTL)
}

func (m *JWTManager) sign(subject, role string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iss":  m.issuer,
		"exp":  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies signature and expiry and returns the claims.
func (m *JWTManager) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing sub claim")
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return &Claims{Subject: sub, Role: role, ExpiresAt: expiresAt}, nil
}
