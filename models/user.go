package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleGuest = "guest"
)

// User represents a registered profile resolved from an identity provider.
// Collection: users
//
// A profile is keyed by (provider, provider_id). When the same email shows up
// under a different provider the existing profile is relinked instead of
// creating a duplicate.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	// UserCode is the stable opaque identifier handed out in tokens.
	UserCode string `bson:"user_code" json:"user_code"`

	Provider   string `bson:"provider" json:"provider"`
	ProviderID string `bson:"provider_id" json:"provider_id"`

	Email        string `bson:"email" json:"email"`
	Name         string `bson:"name" json:"name"`
	ProfileImage string `bson:"profile_image" json:"profile_image"`
	Role         string `bson:"role" json:"role"`
}
