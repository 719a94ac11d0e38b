package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
	portssvc "github.com/vilaserena/care_finance_app/internal/core/ports/services"
)

// snapshotService implements the SnapshotService interface. It is driven by
// the monthly close cron job and by the snapshot listing endpoint.
type snapshotService struct {
	BaseService
	reporting    portssvc.ReportingService
	snapshotRepo portsrepo.SnapshotRepositoryFacade
	cache        ReportCache
}

// SnapshotServiceOption is a functional option for configuring the snapshot service
type SnapshotServiceOption func(*snapshotService)

// WithSnapshotCache lets the close invalidate the cached report of the period
// it just wrote.
func WithSnapshotCache(cache ReportCache) SnapshotServiceOption {
	return func(s *snapshotService) {
		s.cache = cache
	}
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(reporting portssvc.ReportingService, snapshotRepo portsrepo.SnapshotRepositoryFacade, options ...SnapshotServiceOption) portssvc.SnapshotService {
	svc := &snapshotService{
		reporting:    reporting,
		snapshotRepo: snapshotRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.SnapshotService = (*snapshotService)(nil)

// CloseMonth generates the period's DRE and persists its scalar figures.
// Upserting makes the close idempotent per (month, year).
func (s *snapshotService) CloseMonth(ctx context.Context, month, year int) (*domain.DRESnapshot, error) {
	dre, err := s.reporting.GenerateDRE(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to generate DRE for close of %d-%02d: %w", year, month, err)
	}

	snapshot := domain.DRESnapshot{
		SnapshotID:          uuid.NewString(),
		Month:               month,
		Year:                year,
		GrossRevenue:        dre.GrossRevenue,
		Taxes:               dre.Taxes,
		NetRevenue:          dre.NetRevenue,
		OperationalExpenses: dre.OperationalExpenses,
		EBITDA:              dre.EBITDA,
		NetResult:           dre.NetResult,
		TaxesEstimated:      dre.TaxesEstimated,
		CreatedAt:           time.Now().UTC(),
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to persist monthly close",
			slog.Int("month", month),
			slog.Int("year", year))
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidateDRE(ctx, month, year)
	}

	s.LogInfo(ctx, "Monthly close persisted",
		slog.Int("month", month),
		slog.Int("year", year),
		slog.Int64("net_result", snapshot.NetResult))
	return &snapshot, nil
}

// ListSnapshots returns persisted closes, most recent period first.
func (s *snapshotService) ListSnapshots(ctx context.Context) ([]domain.DRESnapshot, error) {
	snapshots, err := s.snapshotRepo.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}
