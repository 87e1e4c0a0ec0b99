package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notebrief/models"
)

// ErrUserNotFound is returned when no profile matches the lookup.
var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// UpsertByProvider resolves a verified provider identity to a profile.
// Match order: (provider, provider_id) first, then email for a provider
// switch (the existing profile is relinked), otherwise a new profile.
func (r *UserRepository) UpsertByProvider(ctx context.Context, provider, providerID, email, name, picture string) (*models.User, error) {
	now := time.Now()

	returnAfter := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"provider": provider, "provider_id": providerID},
		bson.M{"$set": bson.M{
			"email":         email,
			"name":          name,
			"profile_image": picture,
			"updated_at":    now,
		}},
		returnAfter,
	).Decode(&u)
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Provider switch: same email arriving from a different provider keeps
	// the existing profile and history.
	if email != "" {
		err = r.col.FindOneAndUpdate(ctx,
			bson.M{"email": email},
			bson.M{"$set": bson.M{
				"provider":      provider,
				"provider_id":   providerID,
				"name":          name,
				"profile_image": picture,
				"updated_at":    now,
			}},
			returnAfter,
		).Decode(&u)
		if err == nil {
			return &u, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	u = models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		UserCode:     uuid.NewString(),
		Provider:     provider,
		ProviderID:   providerID,
		Email:        email,
		Name:         name,
		ProfileImage: picture,
		Role:         models.RoleUser,
	}
	res, err := r.col.InsertOne(ctx, &u)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return &u, nil
}

// FindByCode returns the profile for a user_code carried in a token.
func (r *UserRepository) FindByCode(ctx context.Context, userCode string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"user_code": userCode}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
