package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vilaserena/care_finance_app/internal/apperrors"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portssvc "github.com/vilaserena/care_finance_app/internal/core/ports/services"
	"github.com/vilaserena/care_finance_app/internal/dto"
	"github.com/vilaserena/care_finance_app/internal/handlers"
	"github.com/vilaserena/care_finance_app/internal/platform/config"
)

// --- Test Suite Setup ---

type ReadjustmentHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockReadjustment *MockReadjustmentService
	jwtSecret        string
}

func (suite *ReadjustmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockReadjustment = new(MockReadjustmentService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true,
	}
	services := &portssvc.ServiceContainer{
		Reporting:    new(MockReportingService),
		Readjustment: suite.mockReadjustment,
		Snapshot:     new(MockSnapshotService),
		User:         new(MockUserService),
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *ReadjustmentHandlerTestSuite) postJSON(url string, payload any, userID string) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), suite.jwtSecret, userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ReadjustmentHandlerTestSuite) TestPreview_Success() {
	previews := []domain.ReadjustmentPreview{
		{
			ResidentID:   "r-1",
			ResidentName: "Maria",
			CurrentTotal: 123000,
			NewBaseValue: 105000,
			NewCareLevel: 21000,
			NewTotal:     129000,
			Difference:   6000,
		},
	}
	suite.mockReadjustment.On("PreviewMassReadjustment", mock.Anything, mock.MatchedBy(func(p decimal.Decimal) bool {
		return p.Equal(decimal.NewFromInt(5))
	}), []string{"r-1"}).Return(previews, nil).Once()

	w := suite.postJSON("/api/v1/readjustments/preview", dto.PreviewReadjustmentRequest{
		Percentage:  decimal.NewFromInt(5),
		ResidentIDs: []string{"r-1"},
	}, "user-1")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.PreviewReadjustmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("5", body.Percentage)
	suite.Require().Len(body.Previews, 1)
	suite.Equal(int64(6000), body.Previews[0].Difference)
	suite.mockReadjustment.AssertExpectations(suite.T())
}

func (suite *ReadjustmentHandlerTestSuite) TestPreview_MissingResidentIDs() {
	w := suite.postJSON("/api/v1/readjustments/preview", map[string]any{
		"percentage": 5,
	}, "user-1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReadjustment.AssertNotCalled(suite.T(), "PreviewMassReadjustment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReadjustmentHandlerTestSuite) TestApply_Success() {
	startDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	result := &domain.ReadjustmentRunResult{
		SuccessCount: 2,
		ErrorCount:   1,
		Details:      []string{"resident r-3: profile not found"},
	}
	suite.mockReadjustment.On("ApplyMassReadjustment",
		mock.Anything,
		[]string{"r-1", "r-2", "r-3"},
		mock.MatchedBy(func(p decimal.Decimal) bool { return p.Equal(decimal.NewFromInt(5)) }),
		"IGPM 2024",
		startDate,
		"user-1",
	).Return(result, nil).Once()

	w := suite.postJSON("/api/v1/readjustments/apply", dto.ApplyReadjustmentRequest{
		Percentage:  decimal.NewFromInt(5),
		ResidentIDs: []string{"r-1", "r-2", "r-3"},
		Reason:      "IGPM 2024",
		StartDate:   "2024-06-01",
	}, "user-1")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ApplyReadjustmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(2, body.SuccessCount)
	suite.Equal(1, body.ErrorCount)
	suite.Require().Len(body.Details, 1)
	suite.mockReadjustment.AssertExpectations(suite.T())
}

func (suite *ReadjustmentHandlerTestSuite) TestApply_BadStartDateFormat() {
	w := suite.postJSON("/api/v1/readjustments/apply", dto.ApplyReadjustmentRequest{
		Percentage:  decimal.NewFromInt(5),
		ResidentIDs: []string{"r-1"},
		Reason:      "IGPM 2024",
		StartDate:   "01/06/2024",
	}, "user-1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReadjustment.AssertNotCalled(suite.T(), "ApplyMassReadjustment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReadjustmentHandlerTestSuite) TestApply_ServiceValidationError() {
	suite.mockReadjustment.On("ApplyMassReadjustment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	).Return(nil, fmt.Errorf("%w: readjustment reason is required", apperrors.ErrValidation)).Once()

	w := suite.postJSON("/api/v1/readjustments/apply", dto.ApplyReadjustmentRequest{
		Percentage:  decimal.NewFromInt(5),
		ResidentIDs: []string{"r-1"},
		Reason:      " ",
		StartDate:   "2024-06-01",
	}, "user-1")

	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Run Test Suite ---

func TestReadjustmentHandler(t *testing.T) {
	suite.Run(t, new(ReadjustmentHandlerTestSuite))
}
