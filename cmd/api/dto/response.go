package dto

import "time"

// Metadata rides along with every envelope.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// ErrorBody is the error half of the envelope.
type ErrorBody struct {
	Code    string `json:"code" example:"validation_error"`
	Message string `json:"message" example:"text must be at least 10 characters"`
}

// Envelope is the uniform response shape for every outcome. Exactly one of
// Data and Error is set.
type Envelope struct {
	Success  bool       `json:"success"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorBody `json:"error,omitempty"`
	Metadata Metadata   `json:"metadata"`
}

// OK wraps data in a success envelope. Pure, no I/O.
func OK(data any) Envelope {
	return Envelope{
		Success:  true,
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	}
}

// Fail wraps an error code and message in a failure envelope. Pure, no I/O.
func Fail(code, message string) Envelope {
	return Envelope{
		Success:  false,
		Error:    &ErrorBody{Code: code, Message: message},
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	}
}
