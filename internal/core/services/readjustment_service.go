package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vilaserena/care_finance_app/internal/apperrors"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
	portssvc "github.com/vilaserena/care_finance_app/internal/core/ports/services"
	"github.com/vilaserena/care_finance_app/internal/utils/accounting"
)

// ReadjustmentNotifier is told about completed batch runs. Notification
// failures must never affect the run result; implementations log and move on.
type ReadjustmentNotifier interface {
	NotifyReadjustmentApplied(ctx context.Context, percentage decimal.Decimal, reason string, result domain.ReadjustmentRunResult)
}

// readjustmentService implements the ReadjustmentService interface
type readjustmentService struct {
	BaseService
	profileRepo  portsrepo.FinancialProfileRepositoryFacade
	residentRepo portsrepo.ResidentRepositoryFacade
	notifier     ReadjustmentNotifier
}

// ReadjustmentServiceOption is a functional option for configuring the readjustment service
type ReadjustmentServiceOption func(*readjustmentService)

// WithReadjustmentNotifier sets the notifier told about completed runs.
func WithReadjustmentNotifier(notifier ReadjustmentNotifier) ReadjustmentServiceOption {
	return func(s *readjustmentService) {
		s.notifier = notifier
	}
}

// NewReadjustmentService creates a new readjustment service with the provided options
func NewReadjustmentService(
	profileRepo portsrepo.FinancialProfileRepositoryFacade,
	residentRepo portsrepo.ResidentRepositoryFacade,
	options ...ReadjustmentServiceOption,
) portssvc.ReadjustmentService {
	svc := &readjustmentService{
		profileRepo:  profileRepo,
		residentRepo: residentRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure readjustmentService implements the ReadjustmentService interface
var _ portssvc.ReadjustmentService = (*readjustmentService)(nil)

// PreviewMassReadjustment simulates the readjustment without writing anything.
// Residents whose profile cannot be read or that carry no fee configuration
// are logged and omitted; they are never reported as zero-diff rows.
func (s *readjustmentService) PreviewMassReadjustment(ctx context.Context, percentage decimal.Decimal, residentIDs []string) ([]domain.ReadjustmentPreview, error) {
	factor := accounting.ReadjustmentFactor(percentage)
	previews := make([]domain.ReadjustmentPreview, 0, len(residentIDs))

	for _, residentID := range residentIDs {
		profile, err := s.profileRepo.FindByResidentID(ctx, residentID)
		if err != nil {
			s.LogWarn(ctx, "Omitting resident from readjustment preview, profile read failed",
				slog.String("resident_id", residentID),
				slog.String("error", err.Error()))
			continue
		}
		if profile.FeeConfig == nil {
			s.LogDebug(ctx, "Omitting resident from readjustment preview, no fee configuration",
				slog.String("resident_id", residentID))
			continue
		}

		fee := *profile.FeeConfig
		newBase := accounting.RoundCents(fee.BaseValue, factor)
		newCare := accounting.RoundCents(fee.CareLevelAdjustment, factor)
		// Fixed extras and discounts are not indexed by the batch operation.
		newTotal := newBase + newCare + fee.FixedExtras - fee.Discount

		previews = append(previews, domain.ReadjustmentPreview{
			ResidentID:   residentID,
			ResidentName: s.residentName(ctx, residentID),
			CurrentTotal: fee.Total(),
			NewBaseValue: newBase,
			NewCareLevel: newCare,
			NewTotal:     newTotal,
			Difference:   newTotal - fee.Total(),
		})
	}

	s.LogInfo(ctx, "Mass readjustment previewed",
		slog.String("percentage", percentage.String()),
		slog.Int("requested", len(residentIDs)),
		slog.Int("previewed", len(previews)))
	return previews, nil
}

// ApplyMassReadjustment runs the batch, one resident at a time, each with an
// independent outcome. Per-resident failures are recorded and never abort the
// batch; only a failure to start the run at all is returned as an error.
func (s *readjustmentService) ApplyMassReadjustment(ctx context.Context, residentIDs []string, percentage decimal.Decimal, reason string, startDate time.Time, appliedBy string) (*domain.ReadjustmentRunResult, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: readjustment reason is required", apperrors.ErrValidation)
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: readjustment start date is required", apperrors.ErrValidation)
	}

	factor := accounting.ReadjustmentFactor(percentage)
	result := &domain.ReadjustmentRunResult{Details: []string{}}

	for _, residentID := range residentIDs {
		if err := s.applyToResident(ctx, residentID, factor, percentage, reason, startDate, appliedBy); err != nil {
			result.ErrorCount++
			result.Details = append(result.Details, fmt.Sprintf("resident %s: %v", residentID, err))
			s.LogWarn(ctx, "Readjustment failed for resident",
				slog.String("resident_id", residentID),
				slog.String("error", err.Error()))
			continue
		}
		result.SuccessCount++
	}

	s.LogInfo(ctx, "Mass readjustment applied",
		slog.String("percentage", percentage.String()),
		slog.String("reason", reason),
		slog.Int("success_count", result.SuccessCount),
		slog.Int("error_count", result.ErrorCount))

	if s.notifier != nil {
		s.notifier.NotifyReadjustmentApplied(ctx, percentage, reason, *result)
	}

	return result, nil
}

// applyToResident performs the read-modify-write for one resident: recompute
// the indexed fee components, close open contracts predating the new start,
// append the new open record and persist the full profile.
func (s *readjustmentService) applyToResident(ctx context.Context, residentID string, factor, percentage decimal.Decimal, reason string, startDate time.Time, appliedBy string) error {
	profile, err := s.profileRepo.FindByResidentID(ctx, residentID)
	if err != nil {
		return fmt.Errorf("failed to read financial profile: %w", err)
	}
	if profile.FeeConfig == nil {
		return apperrors.ErrNoFeeConfig
	}

	fee := *profile.FeeConfig
	fee.BaseValue = accounting.RoundCents(fee.BaseValue, factor)
	fee.CareLevelAdjustment = accounting.RoundCents(fee.CareLevelAdjustment, factor)

	annotation := fmt.Sprintf("Readjusted by %s%% on %s (%s)", percentage.String(), startDate.Format("2006-01-02"), reason)
	if fee.Notes != "" {
		fee.Notes = fee.Notes + "; " + annotation
	} else {
		fee.Notes = annotation
	}

	// Close every open contract that started before the new one. Pre-dated
	// future contracts are left untouched.
	for i := range profile.ContractHistory {
		record := &profile.ContractHistory[i]
		if record.IsOpen() && record.StartDate.Before(startDate) {
			endDate := startDate.AddDate(0, 0, -1)
			record.EndDate = &endDate
		}
	}

	profile.ContractHistory = append(profile.ContractHistory, domain.ContractRecord{
		ContractID:          uuid.NewString(),
		StartDate:           startDate,
		BaseValue:           fee.BaseValue,
		CareLevelAdjustment: fee.CareLevelAdjustment,
		FixedExtras:         fee.FixedExtras,
		Discount:            fee.Discount,
		ReadjustmentIndex:   reason,
		Notes:               annotation,
	})

	profile.FeeConfig = &fee
	profile.BenefitValue = fee.Total()
	profile.LastUpdatedAt = time.Now().UTC()
	profile.LastUpdatedBy = appliedBy

	if err := s.profileRepo.UpdateProfile(ctx, *profile); err != nil {
		return fmt.Errorf("failed to persist updated profile: %w", err)
	}
	return nil
}

// residentName resolves a display name for preview rows; the preview is still
// useful when the roster lookup fails.
func (s *readjustmentService) residentName(ctx context.Context, residentID string) string {
	resident, err := s.residentRepo.FindResidentByID(ctx, residentID)
	if err != nil {
		return ""
	}
	return resident.Name
}
