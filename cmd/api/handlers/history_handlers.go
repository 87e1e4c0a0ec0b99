package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notebrief/cmd/api/dto"
	"notebrief/cmd/api/middleware"
	"notebrief/cmd/api/services"
	"notebrief/repositories"
)

// ListHistoryHandler godoc
// @Summary      List summarization history
// @Description  Returns one page of records, owner-scoped when the caller is authenticated; guests and anonymous callers see only unowned records. Default sort is created_at descending.
// @Tags         history
// @Produce      json
// @Param        limit      query  int     false  "page size (max 100)"
// @Param        offset     query  int     false  "number of records to skip"
// @Param        sortBy     query  string  false  "created_at | updated_at | word_count"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Success      200  {object}  dto.Envelope
// @Router       /history [get]
func ListHistoryHandler(svc *services.HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q dto.ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("validation_error", "invalid pagination parameters"))
			return
		}

		identity := middleware.CurrentIdentity(c)
		opt := repositories.ListOptions{
			Limit:     q.Limit,
			Offset:    q.Offset,
			SortBy:    q.SortBy,
			SortOrder: q.SortOrder,
		}

		records, total, err := svc.List(c.Request.Context(), identity.OwnerID(), opt)
		if err != nil {
			respondError(c, err)
			return
		}

		limit, offset, _ := opt.Normalized()
		page := dto.Page[dto.SummaryDTO]{
			Data:   make([]dto.SummaryDTO, 0, len(records)),
			Limit:  limit,
			Offset: offset,
			Total:  total,
		}
		for i := range records {
			page.Data = append(page.Data, dto.FromSummary(&records[i]))
		}
		c.JSON(http.StatusOK, dto.OK(page))
	}
}

// GetHistoryHandler godoc
// @Summary      Get one record
// @Description  Cross-owner access behaves exactly like a missing record.
// @Tags         history
// @Produce      json
// @Param        id  path  string  true  "record id"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /history/{id} [get]
func GetHistoryHandler(svc *services.HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.CurrentIdentity(c)
		record, err := svc.Get(c.Request.Context(), c.Param("id"), identity.OwnerID())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.FromSummary(record)))
	}
}

// UpdateHistoryHandler godoc
// @Summary      Update a record's text fields
// @Tags         history
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "record id"
// @Param        request  body  dto.UpdateSummaryRequest  true  "fields to update"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /history/{id} [put]
func UpdateHistoryHandler(svc *services.HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateSummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("validation_error", "request body must be JSON"))
			return
		}
		if req.OriginalText == nil && req.Summary == nil && req.KeyPoints == nil {
			c.JSON(http.StatusBadRequest, dto.Fail("validation_error", "at least one field must be provided"))
			return
		}

		identity := middleware.CurrentIdentity(c)
		record, err := svc.Update(c.Request.Context(), c.Param("id"), identity.OwnerID(), repositories.UpdateFields{
			OriginalText: req.OriginalText,
			Summary:      req.Summary,
			KeyPoints:    req.KeyPoints,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.FromSummary(record)))
	}
}

// DeleteHistoryHandler godoc
// @Summary      Delete one record
// @Description  Deleting a missing or cross-owner record returns 404. Of two concurrent deletes for the same id exactly one succeeds.
// @Tags         history
// @Produce      json
// @Param        id  path  string  true  "record id"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /history/{id} [delete]
func DeleteHistoryHandler(svc *services.HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.CurrentIdentity(c)
		if err := svc.Delete(c.Request.Context(), c.Param("id"), identity.OwnerID()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(gin.H{"deleted": true}))
	}
}

// DeleteAllHistoryHandler godoc
// @Summary      Delete all records for the caller
// @Description  Issues one delete per record concurrently; if any delete fails the whole operation fails. Unauthenticated callers can only remove unowned records.
// @Tags         history
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /history [delete]
func DeleteAllHistoryHandler(svc *services.HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.CurrentIdentity(c)
		deleted, err := svc.DeleteAll(c.Request.Context(), identity.OwnerID())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.BulkDeleteResultDTO{Deleted: deleted}))
	}
}

// HistoryStatsHandler godoc
// @Summary      Aggregate history counts
// @Description  Total records and words, per-file-type counts and recent activity, computed by scanning the matching set.
// @Tags         history
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /history/stats [get]
func HistoryStatsHandler(svc *services.HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.CurrentIdentity(c)
		stats, err := svc.Stats(c.Request.Context(), identity.OwnerID())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(stats))
	}
}
