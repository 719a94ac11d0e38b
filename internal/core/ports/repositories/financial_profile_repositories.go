package repositories

import (
	"context"

	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// FinancialProfileRepositoryFacade defines persistence for resident financial
// profiles: the current fee configuration plus the append-only contract
// history.
type FinancialProfileRepositoryFacade interface {
	// FindByResidentID returns the profile with its full contract history.
	FindByResidentID(ctx context.Context, residentID string) (*domain.ResidentFinancialProfile, error)

	// UpdateProfile persists the full profile (fee config, history, benefit
	// value) atomically. The write is a compare-and-swap on the profile
	// version; it returns apperrors.ErrConflict when the stored version no
	// longer matches the one the profile was read at.
	UpdateProfile(ctx context.Context, profile domain.ResidentFinancialProfile) error
}
