package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SourceChannel distinguishes pasted text from file uploads.
const (
	SourceChannelText   = "text"
	SourceChannelUpload = "upload"
)

// SourceMetadata describes where a summary's input came from.
// Empty for pasted text apart from the channel marker.
type SourceMetadata struct {
	Channel   string `bson:"channel" json:"channel"`
	Filename  string `bson:"filename,omitempty" json:"filename,omitempty"`
	MimeType  string `bson:"mime_type,omitempty" json:"mime_type,omitempty"`
	SizeBytes int64  `bson:"size_bytes,omitempty" json:"size_bytes,omitempty"`
}

// Summary represents one completed summarization.
// Collection: summaries
//
// A document is only ever written after a single successful summarizer call;
// there is no partially summarized state.
type Summary struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	// OwnerID is the user_code of the owning user; empty means the record
	// is anonymous/global.
	OwnerID string `bson:"owner_id,omitempty" json:"owner_id,omitempty"`

	OriginalText string         `bson:"original_text" json:"original_text"`
	Summary      string         `bson:"summary" json:"summary"`
	KeyPoints    []string       `bson:"key_points" json:"key_points"`
	WordCount    int            `bson:"word_count" json:"word_count"`
	Source       SourceMetadata `bson:"source" json:"source"`

	// Legacy field mirrors kept in sync on every write so documents stay
	// readable by the previous record shape.
	LegacyText   string   `bson:"text,omitempty" json:"-"`
	LegacyPoints []string `bson:"points,omitempty" json:"-"`
}

// SummaryStats is the aggregate view over an owner's summaries, computed by
// scanning the matching set.
type SummaryStats struct {
	TotalRecords int64            `json:"total_records"`
	TotalWords   int64            `json:"total_words"`
	ByFileType   map[string]int64 `json:"by_file_type"`
	Last7Days    int64            `json:"last_7_days"`
	Last30Days   int64            `json:"last_30_days"`
}
