package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vilaserena/care_finance_app/internal/apperrors"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
	"github.com/vilaserena/care_finance_app/internal/models"
)

// PgxFinancialProfileRepository persists resident financial profiles and
// their append-only contract histories.
type PgxFinancialProfileRepository struct {
	BaseRepository
}

// NewPgxFinancialProfileRepository creates a new repository for financial profile data.
func NewPgxFinancialProfileRepository(pool *pgxpool.Pool) portsrepo.FinancialProfileRepositoryFacade {
	return &PgxFinancialProfileRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialProfileRepositoryFacade = (*PgxFinancialProfileRepository)(nil)

func toDomainProfile(m models.ResidentFinancialProfile, history []domain.ContractRecord) domain.ResidentFinancialProfile {
	profile := domain.ResidentFinancialProfile{
		ProfileID:       m.ProfileID,
		ResidentID:      m.ResidentID,
		ContractHistory: history,
		BenefitValue:    m.BenefitValue,
		Version:         m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.HasFeeConfig {
		profile.FeeConfig = &domain.FeeConfig{
			BaseValue:           m.BaseValue,
			CareLevelAdjustment: m.CareLevelAdjustment,
			FixedExtras:         m.FixedExtras,
			Discount:            m.Discount,
			Notes:               m.FeeNotes,
		}
	}
	return profile
}

// FindByResidentID returns the profile with its full contract history in
// insertion order.
func (r *PgxFinancialProfileRepository) FindByResidentID(ctx context.Context, residentID string) (*domain.ResidentFinancialProfile, error) {
	query := `
		SELECT profile_id, resident_id, has_fee_config, base_value, care_level_adjustment, fixed_extras, discount, fee_notes, benefit_value, version,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM resident_financial_profiles
		WHERE resident_id = $1;
	`
	var m models.ResidentFinancialProfile
	err := r.Pool.QueryRow(ctx, query, residentID).Scan(
		&m.ProfileID, &m.ResidentID, &m.HasFeeConfig, &m.BaseValue, &m.CareLevelAdjustment, &m.FixedExtras, &m.Discount, &m.FeeNotes, &m.BenefitValue, &m.Version,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financial profile for resident %s: %w", residentID, err)
	}

	history, err := r.findContractHistory(ctx, m.ProfileID)
	if err != nil {
		return nil, err
	}

	profile := toDomainProfile(m, history)
	return &profile, nil
}

func (r *PgxFinancialProfileRepository) findContractHistory(ctx context.Context, profileID string) ([]domain.ContractRecord, error) {
	query := `
		SELECT contract_id, start_date, end_date, base_value, care_level_adjustment, fixed_extras, discount, readjustment_index, notes
		FROM contract_records
		WHERE profile_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract history for profile %s: %w", profileID, err)
	}
	defer rows.Close()

	var history []domain.ContractRecord
	for rows.Next() {
		var record domain.ContractRecord
		var endDate sql.NullTime
		if err := rows.Scan(&record.ContractID, &record.StartDate, &endDate, &record.BaseValue, &record.CareLevelAdjustment,
			&record.FixedExtras, &record.Discount, &record.ReadjustmentIndex, &record.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan contract record: %w", err)
		}
		if endDate.Valid {
			end := endDate.Time
			record.EndDate = &end
		}
		history = append(history, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contract history: %w", err)
	}
	return history, nil
}

// UpdateProfile persists the full profile atomically. The profile row update
// is a compare-and-swap on version; a stale version returns
// apperrors.ErrConflict and nothing is written.
func (r *PgxFinancialProfileRepository) UpdateProfile(ctx context.Context, profile domain.ResidentFinancialProfile) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
		UPDATE resident_financial_profiles
		SET has_fee_config = $1, base_value = $2, care_level_adjustment = $3, fixed_extras = $4, discount = $5,
		    fee_notes = $6, benefit_value = $7, version = version + 1, last_updated_at = $8, last_updated_by = $9
		WHERE profile_id = $10 AND version = $11;
	`
	fee := profile.FeeConfig
	hasFee := fee != nil
	if fee == nil {
		fee = &domain.FeeConfig{}
	}
	tag, err := tx.Exec(ctx, updateQuery,
		hasFee, fee.BaseValue, fee.CareLevelAdjustment, fee.FixedExtras, fee.Discount,
		fee.Notes, profile.BenefitValue, profile.LastUpdatedAt, profile.LastUpdatedBy,
		profile.ProfileID, profile.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update financial profile %s: %w", profile.ProfileID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: financial profile %s changed since it was read", apperrors.ErrConflict, profile.ProfileID)
	}

	// The history is replaced wholesale; it is small (one row per contract)
	// and the caller always carries the full list.
	if _, err := tx.Exec(ctx, `DELETE FROM contract_records WHERE profile_id = $1;`, profile.ProfileID); err != nil {
		return fmt.Errorf("failed to clear contract history for profile %s: %w", profile.ProfileID, err)
	}

	insertQuery := `
		INSERT INTO contract_records (contract_id, profile_id, start_date, end_date, base_value, care_level_adjustment, fixed_extras, discount, readjustment_index, notes, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for position, record := range profile.ContractHistory {
		var endDate sql.NullTime
		if record.EndDate != nil {
			endDate = sql.NullTime{Time: *record.EndDate, Valid: true}
		}
		if _, err := tx.Exec(ctx, insertQuery,
			record.ContractID, profile.ProfileID, record.StartDate, endDate,
			record.BaseValue, record.CareLevelAdjustment, record.FixedExtras, record.Discount,
			record.ReadjustmentIndex, record.Notes, position,
		); err != nil {
			return fmt.Errorf("failed to insert contract record %s: %w", record.ContractID, err)
		}
	}

	return r.Commit(ctx, tx)
}
