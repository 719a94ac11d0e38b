package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// ReadjustmentService performs batch fee readjustments across resident
// contracts.
type ReadjustmentService interface {
	// PreviewMassReadjustment simulates a percentage readjustment without
	// writing anything. Residents without a fee configuration or whose profile
	// cannot be read are logged and omitted from the result, never reported as
	// zero-diff rows.
	PreviewMassReadjustment(ctx context.Context, percentage decimal.Decimal, residentIDs []string) ([]domain.ReadjustmentPreview, error)

	// ApplyMassReadjustment applies the readjustment resident by resident,
	// each with an independent outcome. Per-resident failures are counted and
	// detailed, never abort the batch.
	ApplyMassReadjustment(ctx context.Context, residentIDs []string, percentage decimal.Decimal, reason string, startDate time.Time, appliedBy string) (*domain.ReadjustmentRunResult, error)
}
