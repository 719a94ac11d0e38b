package services

import (
	"context"

	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// ReportingService defines operations for generating the DRE and the derived
// occupancy KPIs.
type ReportingService interface {
	// GenerateDRE builds the hierarchical income statement for a (month, year)
	// period. Any upstream fetch failure aborts the whole report; no partial
	// DRE is ever returned.
	GenerateDRE(ctx context.Context, month, year int) (*domain.DREResult, error)

	// DeriveOccupancyMetrics computes per-bed KPIs from the roster and an
	// optional DRE. A nil DRE is a valid transient state and yields zeroed
	// financial KPIs with real occupancy figures.
	DeriveOccupancyMetrics(ctx context.Context, dre *domain.DREResult) (*domain.OccupancyMetrics, error)
}

// SnapshotService closes a period by persisting its scalar DRE figures.
type SnapshotService interface {
	// CloseMonth generates and persists the snapshot for the given period,
	// replacing a previous close of the same period.
	CloseMonth(ctx context.Context, month, year int) (*domain.DRESnapshot, error)

	// ListSnapshots returns persisted closes, most recent period first.
	ListSnapshots(ctx context.Context) ([]domain.DRESnapshot, error)
}
