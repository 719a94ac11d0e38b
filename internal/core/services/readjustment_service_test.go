package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vilaserena/care_finance_app/internal/apperrors"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
	portssvc "github.com/vilaserena/care_finance_app/internal/core/ports/services"
	"github.com/vilaserena/care_finance_app/internal/core/services"
)

// --- Mock FinancialProfileRepository ---
type MockFinancialProfileRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialProfileRepositoryFacade = (*MockFinancialProfileRepository)(nil)

func (m *MockFinancialProfileRepository) FindByResidentID(ctx context.Context, residentID string) (*domain.ResidentFinancialProfile, error) {
	args := m.Called(ctx, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResidentFinancialProfile), args.Error(1)
}

func (m *MockFinancialProfileRepository) UpdateProfile(ctx context.Context, profile domain.ResidentFinancialProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// --- Mock ReadjustmentNotifier ---
type MockReadjustmentNotifier struct {
	mock.Mock
}

var _ services.ReadjustmentNotifier = (*MockReadjustmentNotifier)(nil)

func (m *MockReadjustmentNotifier) NotifyReadjustmentApplied(ctx context.Context, percentage decimal.Decimal, reason string, result domain.ReadjustmentRunResult) {
	m.Called(ctx, percentage, reason, result)
}

// --- Test Suite Setup ---

type ReadjustmentServiceTestSuite struct {
	suite.Suite
	mockProfileRepo  *MockFinancialProfileRepository
	mockResidentRepo *MockResidentRepository
	mockNotifier     *MockReadjustmentNotifier
	service          portssvc.ReadjustmentService
	ctx              context.Context
}

func (suite *ReadjustmentServiceTestSuite) SetupTest() {
	suite.mockProfileRepo = new(MockFinancialProfileRepository)
	suite.mockResidentRepo = new(MockResidentRepository)
	suite.mockNotifier = new(MockReadjustmentNotifier)
	suite.service = services.NewReadjustmentService(
		suite.mockProfileRepo,
		suite.mockResidentRepo,
		services.WithReadjustmentNotifier(suite.mockNotifier),
	)
	suite.ctx = context.Background()
}

func profileFixture(residentID string) *domain.ResidentFinancialProfile {
	openStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.ResidentFinancialProfile{
		ProfileID:  "prof-" + residentID,
		ResidentID: residentID,
		FeeConfig: &domain.FeeConfig{
			BaseValue:           100000,
			CareLevelAdjustment: 20000,
			FixedExtras:         5000,
			Discount:            2000,
		},
		ContractHistory: []domain.ContractRecord{
			{
				ContractID:          "ct-" + residentID,
				StartDate:           openStart,
				BaseValue:           100000,
				CareLevelAdjustment: 20000,
				FixedExtras:         5000,
				Discount:            2000,
			},
		},
		BenefitValue: 123000,
		Version:      3,
	}
}

// --- PreviewMassReadjustment ---

func (suite *ReadjustmentServiceTestSuite) TestPreview_Success() {
	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-1").Return(profileFixture("r-1"), nil).Once()
	suite.mockResidentRepo.On("FindResidentByID", suite.ctx, "r-1").Return(&domain.Resident{ResidentID: "r-1", Name: "Maria"}, nil).Once()

	previews, err := suite.service.PreviewMassReadjustment(suite.ctx, decimal.NewFromInt(5), []string{"r-1"})

	suite.Require().NoError(err)
	suite.Require().Len(previews, 1)
	p := previews[0]
	assert.Equal(suite.T(), "r-1", p.ResidentID)
	assert.Equal(suite.T(), "Maria", p.ResidentName)
	assert.Equal(suite.T(), int64(123000), p.CurrentTotal)
	assert.Equal(suite.T(), int64(105000), p.NewBaseValue)
	assert.Equal(suite.T(), int64(21000), p.NewCareLevel)
	// Fixed extras and discounts are not indexed by the batch operation.
	assert.Equal(suite.T(), int64(129000), p.NewTotal)
	assert.Equal(suite.T(), int64(6000), p.Difference)
}

func (suite *ReadjustmentServiceTestSuite) TestPreview_OmitsUnreadableAndUnconfiguredResidents() {
	noFee := profileFixture("r-2")
	noFee.FeeConfig = nil

	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-1").Return(profileFixture("r-1"), nil).Once()
	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-2").Return(noFee, nil).Once()
	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockResidentRepo.On("FindResidentByID", suite.ctx, "r-1").Return(&domain.Resident{ResidentID: "r-1", Name: "Maria"}, nil).Once()

	previews, err := suite.service.PreviewMassReadjustment(suite.ctx, decimal.NewFromInt(5), []string{"r-1", "r-2", "r-3"})

	suite.Require().NoError(err)
	// Omitted residents never show up as zero-diff rows.
	suite.Require().Len(previews, 1)
	assert.Equal(suite.T(), "r-1", previews[0].ResidentID)
}

func (suite *ReadjustmentServiceTestSuite) TestPreview_RosterLookupFailureStillPreviews() {
	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-1").Return(profileFixture("r-1"), nil).Once()
	suite.mockResidentRepo.On("FindResidentByID", suite.ctx, "r-1").Return(nil, assert.AnError).Once()

	previews, err := suite.service.PreviewMassReadjustment(suite.ctx, decimal.NewFromInt(5), []string{"r-1"})

	suite.Require().NoError(err)
	suite.Require().Len(previews, 1)
	assert.Empty(suite.T(), previews[0].ResidentName)
	assert.Equal(suite.T(), int64(6000), previews[0].Difference)
}

// --- ApplyMassReadjustment ---

func (suite *ReadjustmentServiceTestSuite) TestApply_Success() {
	startDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var saved domain.ResidentFinancialProfile

	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-1").Return(profileFixture("r-1"), nil).Once()
	suite.mockProfileRepo.On("UpdateProfile", suite.ctx, mock.AnythingOfType("domain.ResidentFinancialProfile")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.ResidentFinancialProfile)
		}).Return(nil).Once()
	suite.mockNotifier.On("NotifyReadjustmentApplied", suite.ctx, mock.Anything, "IGPM 2024", mock.Anything).Return().Once()

	result, err := suite.service.ApplyMassReadjustment(suite.ctx, []string{"r-1"}, decimal.NewFromInt(5), "IGPM 2024", startDate, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	assert.Equal(suite.T(), 1, result.SuccessCount)
	assert.Equal(suite.T(), 0, result.ErrorCount)
	assert.Empty(suite.T(), result.Details)

	// Indexed components were recomputed, extras and discount untouched.
	suite.Require().NotNil(saved.FeeConfig)
	assert.Equal(suite.T(), int64(105000), saved.FeeConfig.BaseValue)
	assert.Equal(suite.T(), int64(21000), saved.FeeConfig.CareLevelAdjustment)
	assert.Equal(suite.T(), int64(5000), saved.FeeConfig.FixedExtras)
	assert.Equal(suite.T(), int64(2000), saved.FeeConfig.Discount)
	assert.Contains(suite.T(), saved.FeeConfig.Notes, "Readjusted by 5% on 2024-06-01 (IGPM 2024)")
	assert.Equal(suite.T(), int64(129000), saved.BenefitValue)
	assert.Equal(suite.T(), "user-1", saved.LastUpdatedBy)
	// The version the profile was read at backs the compare-and-swap write.
	assert.Equal(suite.T(), int64(3), saved.Version)

	// Old contract closed the day before the new one starts, new record open.
	suite.Require().Len(saved.ContractHistory, 2)
	closed := saved.ContractHistory[0]
	suite.Require().NotNil(closed.EndDate)
	assert.Equal(suite.T(), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), *closed.EndDate)

	opened := saved.ContractHistory[1]
	assert.True(suite.T(), opened.IsOpen())
	assert.Equal(suite.T(), startDate, opened.StartDate)
	assert.Equal(suite.T(), int64(105000), opened.BaseValue)
	assert.Equal(suite.T(), "IGPM 2024", opened.ReadjustmentIndex)

	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ReadjustmentServiceTestSuite) TestApply_FutureDatedContractsLeftUntouched() {
	startDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	profile := profileFixture("r-1")
	profile.ContractHistory[0].StartDate = time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	var saved domain.ResidentFinancialProfile

	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-1").Return(profile, nil).Once()
	suite.mockProfileRepo.On("UpdateProfile", suite.ctx, mock.AnythingOfType("domain.ResidentFinancialProfile")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.ResidentFinancialProfile)
		}).Return(nil).Once()
	suite.mockNotifier.On("NotifyReadjustmentApplied", suite.ctx, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	_, err := suite.service.ApplyMassReadjustment(suite.ctx, []string{"r-1"}, decimal.NewFromInt(5), "IGPM 2024", startDate, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(saved.ContractHistory, 2)
	// The pre-dated future contract did not start before the new one.
	assert.True(suite.T(), saved.ContractHistory[0].IsOpen())
}

func (suite *ReadjustmentServiceTestSuite) TestApply_PartialFailure() {
	startDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-1").Return(profileFixture("r-1"), nil).Once()
	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-2").Return(nil, assert.AnError).Once()
	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-3").Return(profileFixture("r-3"), nil).Once()
	suite.mockProfileRepo.On("UpdateProfile", suite.ctx, mock.AnythingOfType("domain.ResidentFinancialProfile")).Return(nil).Twice()
	suite.mockNotifier.On("NotifyReadjustmentApplied", suite.ctx, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	result, err := suite.service.ApplyMassReadjustment(suite.ctx, []string{"r-1", "r-2", "r-3"}, decimal.NewFromInt(5), "IGPM 2024", startDate, "user-1")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, result.SuccessCount)
	assert.Equal(suite.T(), 1, result.ErrorCount)
	suite.Require().Len(result.Details, 1)
	assert.Contains(suite.T(), result.Details[0], "r-2")
}

func (suite *ReadjustmentServiceTestSuite) TestApply_NoFeeConfigCountsAsFailure() {
	startDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	noFee := profileFixture("r-1")
	noFee.FeeConfig = nil

	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-1").Return(noFee, nil).Once()
	suite.mockNotifier.On("NotifyReadjustmentApplied", suite.ctx, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	result, err := suite.service.ApplyMassReadjustment(suite.ctx, []string{"r-1"}, decimal.NewFromInt(5), "IGPM 2024", startDate, "user-1")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 0, result.SuccessCount)
	assert.Equal(suite.T(), 1, result.ErrorCount)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "UpdateProfile", mock.Anything, mock.Anything)
}

func (suite *ReadjustmentServiceTestSuite) TestApply_ConcurrentEditConflict() {
	startDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.mockProfileRepo.On("FindByResidentID", suite.ctx, "r-1").Return(profileFixture("r-1"), nil).Once()
	suite.mockProfileRepo.On("UpdateProfile", suite.ctx, mock.AnythingOfType("domain.ResidentFinancialProfile")).Return(apperrors.ErrConflict).Once()
	suite.mockNotifier.On("NotifyReadjustmentApplied", suite.ctx, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	result, err := suite.service.ApplyMassReadjustment(suite.ctx, []string{"r-1"}, decimal.NewFromInt(5), "IGPM 2024", startDate, "user-1")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 0, result.SuccessCount)
	assert.Equal(suite.T(), 1, result.ErrorCount)
	suite.Require().Len(result.Details, 1)
	assert.Contains(suite.T(), result.Details[0], apperrors.ErrConflict.Error())
}

func (suite *ReadjustmentServiceTestSuite) TestApply_MissingReason() {
	startDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	result, err := suite.service.ApplyMassReadjustment(suite.ctx, []string{"r-1"}, decimal.NewFromInt(5), "", startDate, "user-1")

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.Nil(suite.T(), result)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "FindByResidentID", mock.Anything, mock.Anything)
}

func (suite *ReadjustmentServiceTestSuite) TestApply_MissingStartDate() {
	result, err := suite.service.ApplyMassReadjustment(suite.ctx, []string{"r-1"}, decimal.NewFromInt(5), "IGPM 2024", time.Time{}, "user-1")

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.Nil(suite.T(), result)
}

// --- Run Test Suite ---

func TestReadjustmentService(t *testing.T) {
	suite.Run(t, new(ReadjustmentServiceTestSuite))
}
