package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// PreviewReadjustmentRequest asks for a read-only simulation of a percentage
// readjustment across the given residents.
type PreviewReadjustmentRequest struct {
	Percentage  decimal.Decimal `json:"percentage" binding:"required"`
	ResidentIDs []string        `json:"residentIDs" binding:"required,min=1"`
}

// ApplyReadjustmentRequest applies a percentage readjustment across the given
// residents. StartDate is the first effective day of the new contracts,
// formatted YYYY-MM-DD.
type ApplyReadjustmentRequest struct {
	Percentage  decimal.Decimal `json:"percentage" binding:"required"`
	ResidentIDs []string        `json:"residentIDs" binding:"required,min=1"`
	Reason      string          `json:"reason" binding:"required"`
	StartDate   string          `json:"startDate" binding:"required"`
}

// ReadjustmentPreviewEntry is one simulated resident row.
type ReadjustmentPreviewEntry struct {
	ResidentID   string `json:"residentID"`
	ResidentName string `json:"residentName"`
	CurrentTotal int64  `json:"currentTotal"`
	NewBaseValue int64  `json:"newBaseValue"`
	NewCareLevel int64  `json:"newCareLevel"`
	NewTotal     int64  `json:"newTotal"`
	Difference   int64  `json:"difference"`
}

// PreviewReadjustmentResponse is the full simulation response. Residents that
// could not be previewed are omitted.
type PreviewReadjustmentResponse struct {
	Percentage string                     `json:"percentage"`
	Previews   []ReadjustmentPreviewEntry `json:"previews"`
}

// ApplyReadjustmentResponse summarizes an applied batch run.
type ApplyReadjustmentResponse struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Details      []string `json:"details"`
}

// ToPreviewReadjustmentResponse converts domain preview rows to a DTO response.
func ToPreviewReadjustmentResponse(percentage decimal.Decimal, previews []domain.ReadjustmentPreview) PreviewReadjustmentResponse {
	entries := make([]ReadjustmentPreviewEntry, len(previews))
	for i, p := range previews {
		entries[i] = ReadjustmentPreviewEntry{
			ResidentID:   p.ResidentID,
			ResidentName: p.ResidentName,
			CurrentTotal: p.CurrentTotal,
			NewBaseValue: p.NewBaseValue,
			NewCareLevel: p.NewCareLevel,
			NewTotal:     p.NewTotal,
			Difference:   p.Difference,
		}
	}
	return PreviewReadjustmentResponse{
		Percentage: percentage.String(),
		Previews:   entries,
	}
}

// ToApplyReadjustmentResponse converts a domain run result to a DTO response.
func ToApplyReadjustmentResponse(result *domain.ReadjustmentRunResult) ApplyReadjustmentResponse {
	return ApplyReadjustmentResponse{
		SuccessCount: result.SuccessCount,
		ErrorCount:   result.ErrorCount,
		Details:      result.Details,
	}
}
