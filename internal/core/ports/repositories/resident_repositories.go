package repositories

import (
	"context"

	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// ResidentRepositoryFacade exposes the resident roster. Resident CRUD lives in
// the surrounding application; this core only reads.
type ResidentRepositoryFacade interface {
	ListResidents(ctx context.Context) ([]domain.Resident, error)
	FindResidentByID(ctx context.Context, residentID string) (*domain.Resident, error)
}
