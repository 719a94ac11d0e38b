package repositories

import (
	"context"

	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// SnapshotRepositoryFacade persists monthly DRE closes.
type SnapshotRepositoryFacade interface {
	// UpsertSnapshot writes the snapshot for its (month, year), replacing a
	// previous close of the same period. The job is idempotent per period.
	UpsertSnapshot(ctx context.Context, snapshot domain.DRESnapshot) error

	// ListSnapshots returns persisted closes, most recent period first.
	ListSnapshots(ctx context.Context) ([]domain.DRESnapshot, error)
}
