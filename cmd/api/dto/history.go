package dto

// ListQuery binds the history list query string.
type ListQuery struct {
	Limit     int64  `form:"limit"`
	Offset    int64  `form:"offset"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// UpdateSummaryRequest carries the mutable text fields. Nil means untouched.
type UpdateSummaryRequest struct {
	OriginalText *string   `json:"original,omitempty"`
	Summary      *string   `json:"summary,omitempty"`
	KeyPoints    *[]string `json:"keyPoints,omitempty"`
}

// Page is a generic pagination envelope for list results.
// Total is the number of items matching the filters without pagination.
type Page[T any] struct {
	Data   []T   `json:"data"`
	Limit  int64 `json:"limit"`
	Offset int64 `json:"offset"`
	Total  int64 `json:"total"`
}

// BulkDeleteResultDTO reports how many records a bulk delete removed.
type BulkDeleteResultDTO struct {
	Deleted int64 `json:"deleted"`
}
