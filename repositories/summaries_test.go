package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListOptionsNormalized(t *testing.T) {
	testCases := []struct {
		name       string
		opts       ListOptions
		wantLimit  int64
		wantOffset int64
		wantSort   bson.D
	}{
		{
			name:      "zero value gets defaults",
			opts:      ListOptions{},
			wantLimit: 20, wantOffset: 0,
			wantSort: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			name:      "negative values clamped",
			opts:      ListOptions{Limit: -5, Offset: -3},
			wantLimit: 20, wantOffset: 0,
			wantSort: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			name:      "limit capped at one hundred",
			opts:      ListOptions{Limit: 500, Offset: 40},
			wantLimit: 100, wantOffset: 40,
			wantSort: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			name:      "whitelisted sort ascending",
			opts:      ListOptions{Limit: 10, SortBy: "word_count", SortOrder: "ASC"},
			wantLimit: 10, wantOffset: 0,
			wantSort: bson.D{{Key: "word_count", Value: 1}},
		},
		{
			name:      "unknown sort field falls back",
			opts:      ListOptions{SortBy: "owner_id; drop table", SortOrder: "asc"},
			wantLimit: 20, wantOffset: 0,
			wantSort: bson.D{{Key: "created_at", Value: 1}},
		},
		{
			name:      "unknown order defaults to descending",
			opts:      ListOptions{SortBy: "updated_at", SortOrder: "sideways"},
			wantLimit: 20, wantOffset: 0,
			wantSort: bson.D{{Key: "updated_at", Value: -1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset, sort := tc.opts.Normalized()
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
			assert.Equal(t, tc.wantSort, sort)
		})
	}
}

func TestIDFilterOwnerScoping(t *testing.T) {
	id := primitive.NewObjectID()

	scoped := idFilter(id, "usr_abc123")
	assert.Equal(t, bson.M{"_id": id, "owner_id": "usr_abc123"}, scoped)

	// An empty owner must still constrain the match to unowned records,
	// never drop the owner clause.
	anonymous := idFilter(id, "")
	assert.Equal(t, bson.M{"_id": id, "owner_id": bson.M{"$in": bson.A{nil, ""}}}, anonymous)
}

func TestOwnerFilter(t *testing.T) {
	assert.Equal(t, bson.M{"owner_id": "usr_abc123"}, ownerFilter("usr_abc123"))
	assert.Equal(t, bson.M{"owner_id": bson.M{"$in": bson.A{nil, ""}}}, ownerFilter(""))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, countWords(""))
	assert.Equal(t, 0, countWords("   \n\t "))
	assert.Equal(t, 5, countWords("one  two\tthree\nfour five"))
}
