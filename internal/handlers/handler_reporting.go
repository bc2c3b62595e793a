package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/middleware"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/utils/csvexport"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// registerReportingRoutes registers routes related to financial reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/profit-loss", h.getProfitAndLoss)
	}
}

// wantsCSV reports whether the client asked for a CSV download.
func wantsCSV(c *gin.Context) bool {
	return c.Query("format") == "csv"
}

func serveCSV(c *gin.Context, filename string, write func() error) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := write(); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to write CSV report",
			slog.String("filename", filename), slog.String("error", err.Error()))
	}
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Generates the trial balance over the full journal history; use format=csv for a CSV download
// @Tags reports
// @Produce  json
// @Param   format query string false "Response format" Enums(json, csv)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance"})
		return
	}

	if wantsCSV(c) {
		serveCSV(c, "trial-balance.csv", func() error {
			return csvexport.WriteTrialBalance(c.Writer, report)
		})
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getBalanceSheet godoc
// @Summary Get the balance sheet
// @Description Generates the balance sheet over the full journal history; use format=csv for a CSV download
// @Tags reports
// @Produce  json
// @Param   format query string false "Response format" Enums(json, csv)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate balance sheet"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.BalanceSheet(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate balance sheet"})
		return
	}

	if wantsCSV(c) {
		serveCSV(c, "balance-sheet.csv", func() error {
			return csvexport.WriteBalanceSheet(c.Writer, report)
		})
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getProfitAndLoss godoc
// @Summary Get the profit and loss report
// @Description Aggregates raw sales and expenses over the requested period; use format=csv for a CSV download
// @Tags reports
// @Produce  json
// @Param   period query string false "Report period" Enums(all, month, year) default(all)
// @Param   format query string false "Response format" Enums(json, csv)
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Unknown period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate profit and loss"
// @Security BearerAuth
// @Router /reports/profit-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period := domain.ReportPeriod(c.DefaultQuery("period", string(domain.PeriodAll)))
	if !period.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown period: " + string(period)})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), period)
	if err != nil {
		logger.Error("Failed to generate profit and loss", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate profit and loss"})
		return
	}

	if wantsCSV(c) {
		serveCSV(c, "profit-loss.csv", func() error {
			return csvexport.WriteProfitAndLoss(c.Writer, report)
		})
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report, period))
}
