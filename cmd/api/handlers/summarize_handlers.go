package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"notebrief/cmd/api/dto"
	"notebrief/cmd/api/middleware"
	"notebrief/cmd/api/services"
	"notebrief/validate"
)

// SummarizeHandler godoc
// @Summary      Summarize pasted text
// @Description  Validates the text, summarizes it with the LLM and saves the record best-effort. The response carries the summary even when the save fails.
// @Tags         summarize
// @Accept       json
// @Produce      json
// @Param        request  body  dto.SummarizeRequest  true  "text to summarize"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /summarize [post]
func SummarizeHandler(svc *services.SummarizeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SummarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("validation_error", "request body must be JSON with a text field"))
			return
		}

		identity := middleware.CurrentIdentity(c)
		record, _, err := svc.SummarizeText(c.Request.Context(), req.Text, identity.OwnerID())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.OK(dto.FromSummary(record)))
	}
}

// UploadHandler godoc
// @Summary      Summarize an uploaded document
// @Description  Accepts one multipart file (PDF, DOCX or image, max 10MB), extracts its text and summarizes it.
// @Tags         summarize
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "document to summarize"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      422  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /notes/upload [post]
func UploadHandler(svc *services.SummarizeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("validation_error", "multipart field \"file\" is required"))
			return
		}

		// Reject on declared metadata before buffering the body, so an
		// oversized or unsupported upload is never read into memory.
		mimeType := fileHeader.Header.Get("Content-Type")
		if err := validate.File(fileHeader.Filename, mimeType, fileHeader.Size, svc.MaxUpload()); err != nil {
			respondError(c, err)
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("validation_error", "uploaded file could not be read"))
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("validation_error", "uploaded file could not be read"))
			return
		}

		identity := middleware.CurrentIdentity(c)

		record, _, err := svc.SummarizeUpload(c.Request.Context(), fileHeader.Filename, mimeType, data, identity.OwnerID())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.OK(dto.UploadResultDTO{
			ID:            record.ID.Hex(),
			Filename:      record.Source.Filename,
			ExtractedText: record.OriginalText,
			Summary:       record.Summary,
			KeyPoints:     record.KeyPoints,
			Timestamp:     time.Now().UTC(),
		}))
	}
}
