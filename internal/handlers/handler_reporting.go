package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/vilaserena/care_finance_app/internal/core/ports/services"
	"github.com/vilaserena/care_finance_app/internal/dto"
	"github.com/vilaserena/care_finance_app/internal/middleware"
)

// reportingHandler handles HTTP requests related to the DRE and occupancy KPIs
type reportingHandler struct {
	reportingService portssvc.ReportingService
	snapshotService  portssvc.SnapshotService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, ss portssvc.SnapshotService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		snapshotService:  ss,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, snapshotService portssvc.SnapshotService) {
	h := newReportingHandler(reportingService, snapshotService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/dre", h.getDRE)
		reportingGroup.GET("/occupancy", h.getOccupancy)
		reportingGroup.GET("/snapshots", h.listSnapshots)
	}
}

// parsePeriod reads month/year query params, defaulting to the current period.
func parsePeriod(c *gin.Context) (int, int, bool) {
	now := time.Now()
	monthStr := c.DefaultQuery("month", strconv.Itoa(int(now.Month())))
	yearStr := c.DefaultQuery("year", strconv.Itoa(now.Year()))

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be an integer between 1 and 12"})
		return 0, 0, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "year must be a positive integer"})
		return 0, 0, false
	}
	return month, year, true
}

// getDRE godoc
// @Summary Generate DRE report
// @Description Builds the hierarchical income statement for a (month, year) period.
// @Tags reports
// @Produce json
// @Param month query int false "Report month (1-12)" default(current month)
// @Param year query int false "Report year" default(current year)
// @Success 200 {object} dto.DREResponse
// @Failure 400 {object} ErrorResponse "Invalid period"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "Upstream data unavailable"
// @Security BearerAuth
// @Router /reports/dre [get]
func (h *reportingHandler) getDRE(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	dre, err := h.reportingService.GenerateDRE(c.Request.Context(), month, year)
	if err != nil {
		logger.Error("Failed to generate DRE report",
			slog.Int("month", month),
			slog.Int("year", year),
			slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to generate DRE report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDREResponse(dre))
}

// getOccupancy godoc
// @Summary Derive occupancy metrics
// @Description Computes per-bed KPIs from the roster and the period's DRE. When the DRE cannot be generated the occupancy figures are still returned with zeroed financial KPIs.
// @Tags reports
// @Produce json
// @Param month query int false "Report month (1-12)" default(current month)
// @Param year query int false "Report year" default(current year)
// @Success 200 {object} dto.OccupancyResponse
// @Failure 400 {object} ErrorResponse "Invalid period"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "Roster unavailable"
// @Security BearerAuth
// @Router /reports/occupancy [get]
func (h *reportingHandler) getOccupancy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	// The DRE is optional input here: occupancy KPIs stay meaningful while
	// the financial report is unavailable.
	dre, err := h.reportingService.GenerateDRE(c.Request.Context(), month, year)
	if err != nil {
		logger.Warn("DRE unavailable for occupancy metrics, returning occupancy-only KPIs",
			slog.Int("month", month),
			slog.Int("year", year),
			slog.String("error", err.Error()))
		dre = nil
	}

	metrics, err := h.reportingService.DeriveOccupancyMetrics(c.Request.Context(), dre)
	if err != nil {
		logger.Error("Failed to derive occupancy metrics", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to derive occupancy metrics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOccupancyResponse(metrics))
}

// listSnapshots godoc
// @Summary List monthly closes
// @Description Returns persisted monthly DRE closes, most recent period first.
// @Tags reports
// @Produce json
// @Success 200 {array} dto.SnapshotResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list snapshots"
// @Security BearerAuth
// @Router /reports/snapshots [get]
func (h *reportingHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshots, err := h.snapshotService.ListSnapshots(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list monthly closes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponses(snapshots))
}
