package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vilaserena/care_finance_app/internal/apperrors"
	portssvc "github.com/vilaserena/care_finance_app/internal/core/ports/services"
	"github.com/vilaserena/care_finance_app/internal/dto"
	"github.com/vilaserena/care_finance_app/internal/middleware"
)

// readjustmentHandler handles HTTP requests for batch fee readjustments
type readjustmentHandler struct {
	readjustmentService portssvc.ReadjustmentService
}

// newReadjustmentHandler creates a new readjustmentHandler
func newReadjustmentHandler(rs portssvc.ReadjustmentService) *readjustmentHandler {
	return &readjustmentHandler{
		readjustmentService: rs,
	}
}

// registerReadjustmentRoutes registers routes for batch fee readjustments
func registerReadjustmentRoutes(rg *gin.RouterGroup, readjustmentService portssvc.ReadjustmentService) {
	h := newReadjustmentHandler(readjustmentService)

	readjustmentGroup := rg.Group("/readjustments")
	{
		readjustmentGroup.POST("/preview", h.previewReadjustment)
		readjustmentGroup.POST("/apply", h.applyReadjustment)
	}
}

// bindingErrorMessage flattens validator errors into one readable line.
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		parts := make([]string, len(validationErrs))
		for i, fieldErr := range validationErrs {
			parts[i] = fmt.Sprintf("%s failed on %q", fieldErr.Field(), fieldErr.Tag())
		}
		return "Invalid request: " + strings.Join(parts, ", ")
	}
	return "Invalid request body"
}

// previewReadjustment godoc
// @Summary Preview mass readjustment
// @Description Simulates a percentage fee readjustment across residents without writing anything. Residents that cannot be previewed are omitted from the response.
// @Tags readjustments
// @Accept json
// @Produce json
// @Param preview body dto.PreviewReadjustmentRequest true "Preview parameters"
// @Success 200 {object} dto.PreviewReadjustmentResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to preview readjustment"
// @Security BearerAuth
// @Router /readjustments/preview [post]
func (h *readjustmentHandler) previewReadjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PreviewReadjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	previews, err := h.readjustmentService.PreviewMassReadjustment(c.Request.Context(), req.Percentage, req.ResidentIDs)
	if err != nil {
		logger.Error("Failed to preview mass readjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to preview readjustment"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPreviewReadjustmentResponse(req.Percentage, previews))
}

// applyReadjustment godoc
// @Summary Apply mass readjustment
// @Description Applies a percentage fee readjustment resident by resident. Residents succeed or fail independently; the summary always reports both counts.
// @Tags readjustments
// @Accept json
// @Produce json
// @Param apply body dto.ApplyReadjustmentRequest true "Readjustment parameters"
// @Success 200 {object} dto.ApplyReadjustmentResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to start readjustment run"
// @Security BearerAuth
// @Router /readjustments/apply [post]
func (h *readjustmentHandler) applyReadjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApplyReadjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid startDate format. Use YYYY-MM-DD"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.readjustmentService.ApplyMassReadjustment(c.Request.Context(), req.ResidentIDs, req.Percentage, req.Reason, startDate, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to start mass readjustment run", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start readjustment run"})
		return
	}

	c.JSON(http.StatusOK, dto.ToApplyReadjustmentResponse(result))
}
