package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vilaserena/care_finance_app/internal/apperrors"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
	"github.com/vilaserena/care_finance_app/internal/models"
)

// PgxResidentRepository reads the resident roster.
type PgxResidentRepository struct {
	BaseRepository
}

// NewPgxResidentRepository creates a new repository for roster data.
func NewPgxResidentRepository(pool *pgxpool.Pool) portsrepo.ResidentRepositoryFacade {
	return &PgxResidentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ResidentRepositoryFacade = (*PgxResidentRepository)(nil)

func toDomainResident(m models.Resident) domain.Resident {
	return domain.Resident{
		ResidentID: m.ResidentID,
		Name:       m.Name,
		Status:     domain.ResidentStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ListResidents returns the full roster.
func (r *PgxResidentRepository) ListResidents(ctx context.Context) ([]domain.Resident, error) {
	query := `
		SELECT resident_id, name, status, created_at, created_by, last_updated_at, last_updated_by
		FROM residents
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	defer rows.Close()

	var residents []domain.Resident
	for rows.Next() {
		var m models.Resident
		if err := rows.Scan(&m.ResidentID, &m.Name, &m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}
		residents = append(residents, toDomainResident(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate residents: %w", err)
	}
	return residents, nil
}

// FindResidentByID retrieves a resident by its ID.
func (r *PgxResidentRepository) FindResidentByID(ctx context.Context, residentID string) (*domain.Resident, error) {
	query := `
		SELECT resident_id, name, status, created_at, created_by, last_updated_at, last_updated_by
		FROM residents
		WHERE resident_id = $1;
	`
	var m models.Resident
	err := r.Pool.QueryRow(ctx, query, residentID).Scan(
		&m.ResidentID, &m.Name, &m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resident %s: %w", residentID, err)
	}

	resident := toDomainResident(m)
	return &resident, nil
}
