package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	portssvc "github.com/SscSPs/freelancer_books/internal/core/ports/services"
	"github.com/SscSPs/freelancer_books/internal/dto"
	"github.com/SscSPs/freelancer_books/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// duplicateHandler handles HTTP requests related to duplicate detection.
type duplicateHandler struct {
	duplicateService portssvc.DuplicateSvcFacade
}

func newDuplicateHandler(svc portssvc.DuplicateSvcFacade) *duplicateHandler {
	return &duplicateHandler{duplicateService: svc}
}

// RegisterDuplicateRoutes registers routes related to duplicate detection.
func RegisterDuplicateRoutes(rg *gin.RouterGroup, svc portssvc.DuplicateSvcFacade) {
	h := newDuplicateHandler(svc)

	duplicates := rg.Group("/duplicates")
	{
		duplicates.GET("", h.listMarkedDuplicates)
		duplicates.GET("/:variant/candidates", h.findCandidates)
		duplicates.POST("/:variant/:id/check", h.checkRecord)
		duplicates.POST("/:variant/:id/mark", h.markDuplicate)
		duplicates.DELETE("/:variant/:id/mark", h.unmarkDuplicate)
	}
}

// variantParam parses the :variant path segment, answering 400 itself on failure.
func variantParam(c *gin.Context, logger *slog.Logger) (domain.RecordVariant, bool) {
	variant, err := domain.ParseRecordVariant(c.Param("variant"))
	if err != nil {
		logger.Warn("Invalid record variant", slog.String("variant", c.Param("variant")))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return variant, true
}

func (h *duplicateHandler) findCandidates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	variant, ok := variantParam(c, logger)
	if !ok {
		return
	}

	var q dto.FindDuplicatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query for duplicate lookup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	// Both parse cleanly: the binding tags already checked the formats.
	amount := decimal.RequireFromString(q.Amount)
	date, _ := time.Parse(dto.DateLayout, q.Date)

	candidates, err := h.duplicateService.FindDuplicates(c.Request.Context(), variant, amount, date, q.Partner, q.ExcludeID)
	if err != nil {
		respondError(c, logger, err, "Failed to find duplicates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDuplicateCandidatesResponse(candidates))
}

func (h *duplicateHandler) checkRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	variant, ok := variantParam(c, logger)
	if !ok {
		return
	}

	candidates, err := h.duplicateService.CheckRecord(c.Request.Context(), variant, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to check record for duplicates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDuplicateCandidatesResponse(candidates))
}

func (h *duplicateHandler) markDuplicate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	variant, ok := variantParam(c, logger)
	if !ok {
		return
	}

	var req dto.MarkDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkDuplicate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.duplicateService.MarkAsDuplicate(c.Request.Context(), variant, c.Param("id"), req.OriginalID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to mark record as duplicate")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

func (h *duplicateHandler) unmarkDuplicate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	variant, ok := variantParam(c, logger)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.duplicateService.UnmarkAsDuplicate(c.Request.Context(), variant, c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to unmark duplicate")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

func (h *duplicateHandler) listMarkedDuplicates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q dto.ListDuplicatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var variant *domain.RecordVariant
	if q.Variant != "" {
		v, _ := domain.ParseRecordVariant(q.Variant)
		variant = &v
	}

	records, err := h.duplicateService.ListMarkedDuplicates(c.Request.Context(), variant)
	if err != nil {
		respondError(c, logger, err, "Failed to list duplicates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecordsResponse(records))
}
