package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"notebrief/cmd/api/dto"
	"notebrief/cmd/internal/logger"
	"notebrief/extract"
	"notebrief/repositories"
	"notebrief/summarizer"
	"notebrief/validate"
)

// summarizerMessages maps summarizer failure reasons to user-facing text.
var summarizerMessages = map[summarizer.Reason]string{
	summarizer.ReasonConfiguration:   "The summarization service is not configured correctly. Please contact the administrator.",
	summarizer.ReasonQuota:           "The summarization quota has been exhausted. Please try again later.",
	summarizer.ReasonInputTooLong:    "The text is too long to summarize. Shorten it and try again.",
	summarizer.ReasonInvalidResponse: "The summarization service returned an unusable reply. Please try again.",
	summarizer.ReasonUpstream:        "Summarization failed. Please try again in a moment.",
}

// respondError translates the typed error taxonomy into the uniform envelope.
// Order matters: the most specific kinds first, catch-all last.
func respondError(c *gin.Context, err error) {
	var ve *validate.Error
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, dto.Fail("validation_error", ve.Message))
		return
	}

	var ee *extract.Error
	if errors.As(err, &ee) {
		c.JSON(http.StatusUnprocessableEntity, dto.Fail("extraction_"+string(ee.Reason), extract.UserMessage(err)))
		return
	}

	var se *summarizer.Error
	if errors.As(err, &se) {
		msg, ok := summarizerMessages[se.Reason]
		if !ok {
			msg = summarizerMessages[summarizer.ReasonUpstream]
		}
		logger.ErrorWithFields("summarizer failure", logger.Fields{
			"reason": string(se.Reason),
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.Fail("summarizer_"+string(se.Reason), msg))
		return
	}

	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.Fail("not_found", "record not found"))
		return
	}

	logger.ErrorWithFields("unhandled error", logger.Fields{"error": err.Error()})
	c.JSON(http.StatusInternalServerError, dto.Fail("server_error", "internal server error"))
}
