// Package summarizer sends text to Gemini and parses the reply into a short
// summary plus an ordered list of key points.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"notebrief/config"
)

// Result is one summarization outcome. KeyPoints keeps the model's line
// order and numbering verbatim.
type Result struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Reason classifies a summarization failure.
type Reason string

const (
	// ReasonConfiguration covers missing or rejected API credentials.
	ReasonConfiguration Reason = "configuration"

	// ReasonQuota covers rate and quota exhaustion upstream.
	ReasonQuota Reason = "quota_exceeded"

	// ReasonInputTooLong covers inputs the model rejects as too large.
	ReasonInputTooLong Reason = "input_too_long"

	// ReasonInvalidResponse covers replies without a usable summary.
	ReasonInvalidResponse Reason = "invalid_response"

	// ReasonUpstream is the generic upstream failure.
	ReasonUpstream Reason = "upstream"
)

// Error wraps a summarization failure with its classified reason.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("summarizer: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("summarizer: %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ReasonOf returns the classified reason, or empty when err is not a
// summarizer error.
func ReasonOf(err error) Reason {
	var se *Error
	if !errors.As(err, &se) {
		return ""
	}
	return se.Reason
}

const systemInstruction = `You are a note summarization assistant. Analyze the provided text and respond in plain text with exactly two sections.
The first section starts with the line "Summary" followed by a concise prose summary of 2 to 4 sentences.
The second section starts with the line "Key Points" followed by the main points, one per line, using hierarchical numbering (1., 1.1, 1.2.1, 2., ...).
Do not use markdown formatting, code blocks, or any section other than these two.`

// Summarizer produces summaries through a single injected generation
// function. One call per Summarize, no retries, no chunking.
type Summarizer struct {
	generate func(ctx context.Context, text string) (string, error)
}

// New builds a Summarizer backed by the Gemini API using config values.
func New(ctx context.Context) (*Summarizer, error) {
	cfg := config.GetConfig()
	if cfg.GeminiApiKey == "" {
		return nil, &Error{Reason: ReasonConfiguration, Err: errors.New("GEMINI_API_KEY is not set")}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiApiKey,
	})
	if err != nil {
		return nil, &Error{Reason: ReasonConfiguration, Err: err}
	}

	model := cfg.GeminiModel
	return &Summarizer{
		generate: func(ctx context.Context, text string) (string, error) {
			result, err := client.Models.GenerateContent(
				ctx,
				model,
				genai.Text(text),
				&genai.GenerateContentConfig{
					SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
				},
			)
			if err != nil {
				return "", err
			}
			return result.Text(), nil
		},
	}, nil
}

// NewWithGenerate builds a Summarizer over a custom generation function.
// Used by tests.
func NewWithGenerate(fn func(ctx context.Context, text string) (string, error)) *Summarizer {
	return &Summarizer{generate: fn}
}

// Summarize sends text to the model verbatim and parses the single reply.
func (s *Summarizer) Summarize(ctx context.Context, text string) (*Result, error) {
	reply, err := s.generate(ctx, text)
	if err != nil {
		return nil, &Error{Reason: classify(err), Err: err}
	}
	return parseReply(reply)
}

// classify maps upstream API errors onto reasons by status code. Errors that
// are not API errors stay generic.
func classify(err error) Reason {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return ReasonUpstream
	}
	switch apiErr.Code {
	case 401, 403:
		return ReasonConfiguration
	case 429:
		return ReasonQuota
	case 400:
		return ReasonInputTooLong
	default:
		return ReasonUpstream
	}
}

const keyPointsMarker = "Key Points"

// parseReply splits the model reply on the literal "Key Points" marker.
// Everything before it (minus a leading "Summary" label) becomes the summary;
// everything after becomes key points, one non-empty trimmed line each, in
// reply order. Numbering is taken as-is and never validated.
func parseReply(reply string) (*Result, error) {
	summaryPart := reply
	pointsPart := ""

	if idx := strings.Index(reply, keyPointsMarker); idx >= 0 {
		summaryPart = reply[:idx]
		pointsPart = reply[idx+len(keyPointsMarker):]
	}

	summaryPart = strings.TrimSpace(summaryPart)
	summaryPart = strings.TrimPrefix(summaryPart, "Summary:")
	summaryPart = strings.TrimPrefix(summaryPart, "Summary")
	summaryPart = strings.TrimSpace(summaryPart)

	if summaryPart == "" {
		return nil, &Error{Reason: ReasonInvalidResponse, Err: errors.New("reply has no usable summary")}
	}

	pointsPart = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(pointsPart), ":"))

	keyPoints := []string{}
	for _, line := range strings.Split(pointsPart, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			keyPoints = append(keyPoints, line)
		}
	}

	return &Result{Summary: summaryPart, KeyPoints: keyPoints}, nil
}
