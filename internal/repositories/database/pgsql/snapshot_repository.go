package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
	"github.com/vilaserena/care_finance_app/internal/models"
)

// PgxSnapshotRepository persists monthly DRE closes.
type PgxSnapshotRepository struct {
	BaseRepository
}

// NewPgxSnapshotRepository creates a new repository for monthly close data.
func NewPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

// UpsertSnapshot writes the close for its period, replacing a previous close
// of the same (month, year).
func (r *PgxSnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot domain.DRESnapshot) error {
	query := `
		INSERT INTO dre_snapshots (snapshot_id, month, year, gross_revenue, taxes, net_revenue, operational_expenses, ebitda, net_result, taxes_estimated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (month, year) DO UPDATE
		SET gross_revenue = EXCLUDED.gross_revenue,
		    taxes = EXCLUDED.taxes,
		    net_revenue = EXCLUDED.net_revenue,
		    operational_expenses = EXCLUDED.operational_expenses,
		    ebitda = EXCLUDED.ebitda,
		    net_result = EXCLUDED.net_result,
		    taxes_estimated = EXCLUDED.taxes_estimated,
		    created_at = EXCLUDED.created_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		snapshot.SnapshotID, snapshot.Month, snapshot.Year,
		snapshot.GrossRevenue, snapshot.Taxes, snapshot.NetRevenue,
		snapshot.OperationalExpenses, snapshot.EBITDA, snapshot.NetResult,
		snapshot.TaxesEstimated, snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for %d-%02d: %w", snapshot.Year, snapshot.Month, err)
	}
	return nil
}

// ListSnapshots returns persisted closes, most recent period first.
func (r *PgxSnapshotRepository) ListSnapshots(ctx context.Context) ([]domain.DRESnapshot, error) {
	query := `
		SELECT snapshot_id, month, year, gross_revenue, taxes, net_revenue, operational_expenses, ebitda, net_result, taxes_estimated, created_at
		FROM dre_snapshots
		ORDER BY year DESC, month DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.DRESnapshot
	for rows.Next() {
		var m models.DRESnapshot
		if err := rows.Scan(&m.SnapshotID, &m.Month, &m.Year, &m.GrossRevenue, &m.Taxes, &m.NetRevenue,
			&m.OperationalExpenses, &m.EBITDA, &m.NetResult, &m.TaxesEstimated, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, domain.DRESnapshot{
			SnapshotID:          m.SnapshotID,
			Month:               m.Month,
			Year:                m.Year,
			GrossRevenue:        m.GrossRevenue,
			Taxes:               m.Taxes,
			NetRevenue:          m.NetRevenue,
			OperationalExpenses: m.OperationalExpenses,
			EBITDA:              m.EBITDA,
			NetResult:           m.NetResult,
			TaxesEstimated:      m.TaxesEstimated,
			CreatedAt:           m.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}
