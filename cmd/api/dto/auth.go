package dto

import "time"

// VerifyRequest is the provider token exchange input.
type VerifyRequest struct {
	Provider string `json:"provider" example:"google"`
	Token    string `json:"token"`
}

// UserDTO is the external user profile shape.
type UserDTO struct {
	UserCode     string `json:"userCode"`
	Provider     string `json:"provider"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
	Role         string `json:"role"`
}

// TokenResponse carries a freshly issued token and its subject.
type TokenResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// GuestUserDTO is the ephemeral guest session shape.
type GuestUserDTO struct {
	Role      string    `json:"role"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GuestTokenResponse carries a guest session token.
type GuestTokenResponse struct {
	Token string       `json:"token"`
	User  GuestUserDTO `json:"user"`
}
