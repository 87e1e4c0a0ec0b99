// Package validate checks pasted text and uploaded files against static
// policy before any extraction or summarization work is done. It is pure and
// has no side effects.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinTextLength = 10
	MaxTextLength = 50000

	MaxFileSizeBytes  = 10 * 1024 * 1024
	MaxFilenameLength = 255
)

// AllowedMimeTypes is the exact set of upload MIME types the extractor can
// route. Anything else is rejected before the extractor is invoked.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// Error is a policy violation on caller input.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Text validates pasted text input.
func Text(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return &Error{Field: "text", Message: "text is required"}
	}
	n := utf8.RuneCountInString(trimmed)
	if n < MinTextLength {
		return &Error{Field: "text", Message: fmt.Sprintf("text must be at least %d characters", MinTextLength)}
	}
	if n > MaxTextLength {
		return &Error{Field: "text", Message: fmt.Sprintf("text must be at most %d characters", MaxTextLength)}
	}
	return nil
}

// File validates an uploaded file's declared metadata. The buffer itself is
// not inspected here; format errors surface from the extractor.
func File(name, mimeType string, size int64, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxFileSizeBytes
	}
	if name == "" {
		return &Error{Field: "file", Message: "filename is required"}
	}
	if utf8.RuneCountInString(name) > MaxFilenameLength {
		return &Error{Field: "file", Message: fmt.Sprintf("filename must be at most %d characters", MaxFilenameLength)}
	}
	if unsafeFilename(name) {
		return &Error{Field: "file", Message: "filename contains unsafe characters"}
	}
	if size <= 0 {
		return &Error{Field: "file", Message: "file is empty"}
	}
	if size > maxSize {
		return &Error{Field: "file", Message: fmt.Sprintf("file exceeds the maximum size of %d bytes", maxSize)}
	}
	if !AllowedMimeTypes[mimeType] {
		return &Error{Field: "file", Message: fmt.Sprintf("unsupported file type %q", mimeType)}
	}
	return nil
}

// unsafeFilename reports control characters or path separators in a declared
// filename. The name is never used as a filesystem path, but it is persisted
// and echoed back, so it is held to the same policy anyway.
func unsafeFilename(name string) bool {
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return true
		}
		if r == '/' || r == '\\' {
			return true
		}
	}
	return false
}
