package summarizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func staticReply(reply string) *Summarizer {
	return NewWithGenerate(func(ctx context.Context, text string) (string, error) {
		return reply, nil
	})
}

func TestSummarizeParsesWellFormedReply(t *testing.T) {
	s := staticReply(`Summary
The meeting covered Q3 targets and the hiring freeze. Two follow-ups were assigned.

Key Points
1. Q3 revenue target raised to 12M.
1.1 Enterprise accounts carry most of the increase.
2. Hiring freeze continues through October.`)

	res, err := s.Summarize(context.Background(), "raw meeting notes")

	assert.NoError(t, err)
	assert.Equal(t, "The meeting covered Q3 targets and the hiring freeze. Two follow-ups were assigned.", res.Summary)
	assert.Equal(t, []string{
		"1. Q3 revenue target raised to 12M.",
		"1.1 Enterprise accounts carry most of the increase.",
		"2. Hiring freeze continues through October.",
	}, res.KeyPoints)
}

func TestSummarizeStripsSummaryLabelWithColon(t *testing.T) {
	s := staticReply("Summary: A short recap of the notes.\nKey Points:\n1. Only point.")

	res, err := s.Summarize(context.Background(), "notes")

	assert.NoError(t, err)
	assert.Equal(t, "A short recap of the notes.", res.Summary)
	assert.Equal(t, []string{"1. Only point."}, res.KeyPoints)
}

func TestSummarizeWithoutMarkerTreatsWholeReplyAsSummary(t *testing.T) {
	s := staticReply("Just a free-form answer with no sections at all.")

	res, err := s.Summarize(context.Background(), "notes")

	assert.NoError(t, err)
	assert.Equal(t, "Just a free-form answer with no sections at all.", res.Summary)
	assert.Empty(t, res.KeyPoints)
	assert.NotNil(t, res.KeyPoints, "key points must be an empty slice, never nil")
}

func TestSummarizeEmptySummaryIsInvalidResponse(t *testing.T) {
	testCases := []struct {
		name  string
		reply string
	}{
		{name: "empty reply", reply: ""},
		{name: "whitespace only", reply: "   \n\n  "},
		{name: "label without content", reply: "Summary\nKey Points\n1. Orphaned point."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := staticReply(tc.reply).Summarize(context.Background(), "notes")
			assert.Equal(t, ReasonInvalidResponse, ReasonOf(err))
		})
	}
}

func TestSummarizeClassifiesAPIErrors(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want Reason
	}{
		{name: "unauthorized", err: genai.APIError{Code: 401, Message: "invalid key"}, want: ReasonConfiguration},
		{name: "forbidden", err: genai.APIError{Code: 403, Message: "blocked"}, want: ReasonConfiguration},
		{name: "rate limited", err: genai.APIError{Code: 429, Message: "quota"}, want: ReasonQuota},
		{name: "request too large", err: genai.APIError{Code: 400, Message: "too many tokens"}, want: ReasonInputTooLong},
		{name: "server error", err: genai.APIError{Code: 503, Message: "overloaded"}, want: ReasonUpstream},
		{name: "plain error", err: errors.New("connection reset"), want: ReasonUpstream},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewWithGenerate(func(ctx context.Context, text string) (string, error) {
				return "", tc.err
			})

			_, err := s.Summarize(context.Background(), "notes")

			assert.Equal(t, tc.want, ReasonOf(err))
		})
	}
}

func TestSummarizeSendsInputVerbatim(t *testing.T) {
	var sent string
	s := NewWithGenerate(func(ctx context.Context, text string) (string, error) {
		sent = text
		return "Summary\nFine.\nKey Points\n1. One.", nil
	})

	input := "  raw text with   odd spacing  "
	_, err := s.Summarize(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, input, sent)
}

func TestReasonOfUnrelatedError(t *testing.T) {
	assert.Equal(t, Reason(""), ReasonOf(errors.New("something else")))
}
