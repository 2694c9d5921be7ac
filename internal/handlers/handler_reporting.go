package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendwise/spendwise-backend/internal/core/ports/services"
	"github.com/spendwise/spendwise-backend/internal/dto"
	"github.com/spendwise/spendwise-backend/internal/middleware"
)

// reportingHandler handles HTTP requests for reports and dashboard figures.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers all reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/stats", h.getTransactionStats)
		reports.GET("/monthly", h.getMonthlySpending)
		reports.GET("/categories", h.getCategoryAnalysis)
		reports.GET("/budgets", h.getBudgetTracking)
		reports.GET("/summary", h.getFinancialSummary)
	}
}

// parseDateRange converts validated YYYY-MM-DD params into an inclusive
// range; the end date is extended to cover its whole day.
func parseDateRange(params dto.DateRangeParams) (time.Time, time.Time) {
	from, _ := time.Parse("2006-01-02", params.DateFrom)
	to, _ := time.Parse("2006-01-02", params.DateTo)
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, to
}

// getTransactionStats godoc
// @Summary Get transaction statistics
// @Description Totals income and expenses over a date range. Transfers are
// @Description excluded.
// @Tags reports
// @Produce json
// @Param dateFrom query string true "Start date (YYYY-MM-DD)"
// @Param dateTo query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} domain.TransactionStats
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/stats [get]
func (h *reportingHandler) getTransactionStats(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	from, to := parseDateRange(params)
	stats, err := h.reportingService.GetTransactionStats(c.Request.Context(), userID, from, to)
	if err != nil {
		handleServiceError(c, err, "Failed to compute transaction statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getMonthlySpending godoc
// @Summary Get monthly spending
// @Description Buckets a year's income and spending by month. Months without
// @Description activity are zero-filled.
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Success 200 {array} domain.MonthlyFigures
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlySpending(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.MonthlySpendingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	figures, err := h.reportingService.GetMonthlySpending(c.Request.Context(), userID, params.Year)
	if err != nil {
		handleServiceError(c, err, "Failed to compute monthly spending")
		return
	}
	c.JSON(http.StatusOK, figures)
}

// getCategoryAnalysis godoc
// @Summary Get category spending analysis
// @Description Breaks down expense spending per category over a date range,
// @Description with active budget amounts attached.
// @Tags reports
// @Produce json
// @Param dateFrom query string true "Start date (YYYY-MM-DD)"
// @Param dateTo query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {array} domain.CategorySpend
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportingHandler) getCategoryAnalysis(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	from, to := parseDateRange(params)
	analysis, err := h.reportingService.GetCategoryAnalysis(c.Request.Context(), userID, from, to)
	if err != nil {
		handleServiceError(c, err, "Failed to compute category analysis")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// getBudgetTracking godoc
// @Summary Get budget tracking
// @Description Reports consumption of every active budget over a date range,
// @Description including daily average and projected spend.
// @Tags reports
// @Produce json
// @Param dateFrom query string true "Start date (YYYY-MM-DD)"
// @Param dateTo query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {array} domain.BudgetProgress
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/budgets [get]
func (h *reportingHandler) getBudgetTracking(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	from, to := parseDateRange(params)
	tracking, err := h.reportingService.GetBudgetTracking(c.Request.Context(), userID, from, to)
	if err != nil {
		handleServiceError(c, err, "Failed to compute budget tracking")
		return
	}
	c.JSON(http.StatusOK, tracking)
}

// getFinancialSummary godoc
// @Summary Get financial summary
// @Description Assembles the dashboard summary for a look-back period:
// @Description overview totals, monthly trends, category analysis, budget
// @Description tracking and generated insights.
// @Tags reports
// @Produce json
// @Param period query string false "Look-back period" Enums(week, month, quarter, year) default(month)
// @Success 200 {object} dto.FinancialSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.reportingService.GetFinancialSummary(c.Request.Context(), userID, params.Period)
	if err != nil {
		handleServiceError(c, err, "Failed to assemble financial summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
