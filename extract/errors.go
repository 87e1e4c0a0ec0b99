package extract

import (
	"errors"
	"fmt"
)

// Reason classifies an extraction failure. Handlers map reasons to
// user-facing messages; nothing downstream inspects error text.
type Reason string

const (
	// ReasonUnsupportedType means the declared MIME type has no converter.
	ReasonUnsupportedType Reason = "unsupported_type"

	// ReasonCorrupted means the bytes do not parse as the declared format.
	ReasonCorrupted Reason = "corrupted"

	// ReasonPasswordProtected means the document is encrypted and cannot be
	// read without a password.
	ReasonPasswordProtected Reason = "password_protected"

	// ReasonEmptyResult means conversion succeeded but produced no usable
	// text (under 10 characters after normalization).
	ReasonEmptyResult Reason = "empty_result"

	// ReasonTooLarge means the document exceeds the converter's size limit.
	ReasonTooLarge Reason = "too_large"

	// ReasonProviderFailure means the OCR provider call itself failed.
	ReasonProviderFailure Reason = "provider_failure"
)

// Error wraps extraction failures with the operation and classified reason.
type Error struct {
	// Op is the converter that failed (e.g. "pdf", "docx", "image").
	Op string

	Reason Reason

	// Err is the underlying error, may be nil for policy failures.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract: %s: %s", e.Op, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// userMessages maps each reason to the message surfaced to callers.
var userMessages = map[Reason]string{
	ReasonUnsupportedType:   "This file type is not supported. Upload a PDF, DOCX, or image file instead.",
	ReasonCorrupted:         "The file appears to be corrupted or is not a valid document. Try re-exporting it or paste the text directly.",
	ReasonPasswordProtected: "The document is password-protected. Remove the password and upload it again.",
	ReasonEmptyResult:       "No readable text was found in the document. Try a clearer scan or paste the text directly.",
	ReasonTooLarge:          "The document is too large to process. Split it into smaller files and try again.",
	ReasonProviderFailure:   "Text recognition failed. Please try again in a moment.",
}

// UserMessage returns the user-facing message for an extraction error, or an
// empty string when err is not an extraction error.
func UserMessage(err error) string {
	var ee *Error
	if !errors.As(err, &ee) {
		return ""
	}
	if msg, ok := userMessages[ee.Reason]; ok {
		return msg
	}
	return userMessages[ReasonProviderFailure]
}

// ReasonOf returns the classified reason, or an empty Reason when err is not
// an extraction error.
func ReasonOf(err error) Reason {
	var ee *Error
	if !errors.As(err, &ee) {
		return ""
	}
	return ee.Reason
}
