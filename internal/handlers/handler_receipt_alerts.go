package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/freelancer_books/internal/core/ports/services"
	"github.com/SscSPs/freelancer_books/internal/dto"
	"github.com/SscSPs/freelancer_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

// receiptAlertHandler handles HTTP requests related to missing-receipt alerts.
type receiptAlertHandler struct {
	alertService portssvc.ReceiptAlertSvcFacade
}

func newReceiptAlertHandler(svc portssvc.ReceiptAlertSvcFacade) *receiptAlertHandler {
	return &receiptAlertHandler{alertService: svc}
}

// RegisterReceiptAlertRoutes registers routes related to missing-receipt alerts.
func RegisterReceiptAlertRoutes(rg *gin.RouterGroup, svc portssvc.ReceiptAlertSvcFacade) {
	h := newReceiptAlertHandler(svc)

	alerts := rg.Group("/receipt-alerts")
	{
		alerts.GET("", h.listActive)
		alerts.GET("/stats", h.stats)
		alerts.POST("/scan", h.scan)
		alerts.POST("/expenses/:id/check", h.checkExpense)
		alerts.DELETE("/expenses/:id", h.removeForExpense)
		alerts.POST("/:id/dismiss", h.dismiss)
		alerts.POST("/:id/restore", h.restore)
	}
}

func (h *receiptAlertHandler) listActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	alerts, err := h.alertService.ActiveAlerts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list receipt alerts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListActiveAlertsResponse(alerts))
}

func (h *receiptAlertHandler) stats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stats, err := h.alertService.AlertStats(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to compute alert statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertStatsResponse(*stats))
}

func (h *receiptAlertHandler) scan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.alertService.DailyScan(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to run receipt scan")
		return
	}
	c.JSON(http.StatusOK, dto.ToScanSummaryResponse(summary))
}

func (h *receiptAlertHandler) checkExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	alert, err := h.alertService.CheckExpense(c.Request.Context(), expenseID)
	if err != nil {
		respondError(c, logger, err, "Failed to check expense receipt")
		return
	}

	resp := dto.CheckExpenseResponse{ExpenseID: expenseID}
	if alert != nil {
		a := dto.ToAlertResponse(alert)
		resp.Alert = &a
	}
	c.JSON(http.StatusOK, resp)
}

func (h *receiptAlertHandler) removeForExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.alertService.RemoveAlertForExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to remove receipt alert")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *receiptAlertHandler) dismiss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	alert, err := h.alertService.DismissAlert(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to dismiss receipt alert")
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertResponse(alert))
}

func (h *receiptAlertHandler) restore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	alert, err := h.alertService.RestoreAlert(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to restore receipt alert")
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertResponse(alert))
}
