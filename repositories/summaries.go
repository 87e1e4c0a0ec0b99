package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"notebrief/models"
)

// ErrNotFound is returned for missing records and for records owned by a
// different identity, so cross-owner access is indistinguishable from absence.
var ErrNotFound = errors.New("record not found")

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListOptions controls pagination and ordering for List.
type ListOptions struct {
	Limit     int64
	Offset    int64
	SortBy    string
	SortOrder string
}

// sortFields whitelists client-supplied sort keys onto document fields.
var sortFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"word_count": "word_count",
}

// Normalized clamps limit/offset and resolves the sort specification.
// Defaults: created_at descending, limit 20.
func (o ListOptions) Normalized() (limit, offset int64, sort bson.D) {
	limit = o.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset = o.Offset
	if offset < 0 {
		offset = 0
	}

	field, ok := sortFields[o.SortBy]
	if !ok {
		field = "created_at"
	}
	order := -1
	if strings.EqualFold(o.SortOrder, "asc") {
		order = 1
	}
	return limit, offset, bson.D{{Key: field, Value: order}}
}

type SummaryRepository struct {
	col *mongo.Collection
}

func NewSummaryRepository(db *mongo.Database) *SummaryRepository {
	return &SummaryRepository{col: db.Collection("summaries")}
}

// ownerClause builds the owner_id match. An empty ownerID (guest or
// anonymous caller) matches only unowned records: the null comparison covers
// both a missing owner_id field and an explicit empty value, and never an
// owned record.
func ownerClause(ownerID string) any {
	if ownerID == "" {
		return bson.M{"$in": bson.A{nil, ""}}
	}
	return ownerID
}

// idFilter scopes a lookup by id and owner, so a cross-owner id is
// indistinguishable from a missing one.
func idFilter(id primitive.ObjectID, ownerID string) bson.M {
	return bson.M{"_id": id, "owner_id": ownerClause(ownerID)}
}

func ownerFilter(ownerID string) bson.M {
	return bson.M{"owner_id": ownerClause(ownerID)}
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// applyLegacyFields keeps the old record shape readable: text mirrors
// original_text, points mirrors key_points.
func applyLegacyFields(s *models.Summary) {
	s.LegacyText = s.OriginalText
	s.LegacyPoints = s.KeyPoints
}

// Insert assigns the id and timestamps and stores the record.
func (r *SummaryRepository) Insert(ctx context.Context, s *models.Summary) error {
	now := time.Now()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.WordCount == 0 {
		s.WordCount = countWords(s.OriginalText)
	}
	if s.KeyPoints == nil {
		s.KeyPoints = []string{}
	}
	applyLegacyFields(s)

	_, err := r.col.InsertOne(ctx, s)
	return err
}

// List returns one page of records plus the total matching count.
// Offset pagination is not cursor-stable under concurrent inserts, which is
// acceptable at this scale.
func (r *SummaryRepository) List(ctx context.Context, ownerID string, opt ListOptions) ([]models.Summary, int64, error) {
	filter := ownerFilter(ownerID)
	limit, offset, sort := opt.Normalized()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().SetSort(sort).SetSkip(offset).SetLimit(limit)
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	results := []models.Summary{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// FindByID returns one record. A record owned by someone else behaves
// exactly like a missing record.
func (r *SummaryRepository) FindByID(ctx context.Context, id, ownerID string) (*models.Summary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var s models.Summary
	if err := r.col.FindOne(ctx, idFilter(oid, ownerID)).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateFields are the mutable text fields; nil pointers are left untouched.
type UpdateFields struct {
	OriginalText *string
	Summary      *string
	KeyPoints    *[]string
}

// Update merges the given fields, bumps updated_at and returns the updated
// record.
func (r *SummaryRepository) Update(ctx context.Context, id, ownerID string, fields UpdateFields) (*models.Summary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if fields.OriginalText != nil {
		set["original_text"] = *fields.OriginalText
		set["word_count"] = countWords(*fields.OriginalText)
		set["text"] = *fields.OriginalText
	}
	if fields.Summary != nil {
		set["summary"] = *fields.Summary
	}
	if fields.KeyPoints != nil {
		set["key_points"] = *fields.KeyPoints
		set["points"] = *fields.KeyPoints
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Summary
	err = r.col.FindOneAndUpdate(ctx, idFilter(oid, ownerID), bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes one record. Exactly one of two concurrent deletes for the
// same id succeeds; the other observes ErrNotFound.
func (r *SummaryRepository) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, idFilter(oid, ownerID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByOwner enumerates matching ids and issues one delete per record
// concurrently. If any delete fails the aggregate operation fails.
func (r *SummaryRepository) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	cur, err := r.col.Find(ctx, ownerFilter(ownerID), options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return 0, err
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			_, err := r.col.DeleteOne(gctx, bson.M{"_id": id})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// Stats scans the full matching set and aggregates counts. No materialized
// aggregate is kept.
func (r *SummaryRepository) Stats(ctx context.Context, ownerID string) (*models.SummaryStats, error) {
	cur, err := r.col.Find(ctx, ownerFilter(ownerID), options.Find().SetProjection(bson.M{
		"word_count": 1,
		"created_at": 1,
		"source":     1,
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	stats := &models.SummaryStats{ByFileType: map[string]int64{}}
	now := time.Now()
	for cur.Next(ctx) {
		var s models.Summary
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		stats.TotalRecords++
		stats.TotalWords += int64(s.WordCount)

		fileType := s.Source.MimeType
		if fileType == "" {
			fileType = models.SourceChannelText
		}
		stats.ByFileType[fileType]++

		age := now.Sub(s.CreatedAt)
		if age <= 7*24*time.Hour {
			stats.Last7Days++
		}
		if age <= 30*24*time.Hour {
			stats.Last30Days++
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
