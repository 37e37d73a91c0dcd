package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/skywalker/milestone_backend/internal/apperrors"
	"github.com/skywalker/milestone_backend/internal/core/domain"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/core/services"
	"github.com/skywalker/milestone_backend/internal/dto"
	"github.com/skywalker/milestone_backend/internal/handlers"
	"github.com/skywalker/milestone_backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MilestoneHandlerTestSuite reuses the mocks declared in handler_auth_test.go.
type MilestoneHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockMilestoneService *MockMilestoneService
	jwtSecret            string
	userID               string
	token                string
}

func (suite *MilestoneHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "milestone-backend-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *MilestoneHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockMilestoneService = new(MockMilestoneService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		JWTExpiry:    time.Hour,
		JWTIssuer:    "milestone-backend-test",
		IsProduction: true,
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		User:       new(MockUserService),
		Milestone:  suite.mockMilestoneService,
		Token:      services.NewTokenService(cfg),
		OAuth:      new(MockOAuthService),
		OAuthLogin: new(MockOAuthLoginService),
	})

	suite.userID = uuid.NewString()
	suite.token = suite.generateTestToken(suite.userID)
}

func (suite *MilestoneHandlerTestSuite) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *MilestoneHandlerTestSuite) TestListMilestones_Success() {
	achieveDate := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	milestones := []domain.Milestone{
		{
			MilestoneID: uuid.NewString(),
			UserID:      suite.userID,
			Title:       "Run a marathon",
			AchieveDate: &achieveDate,
			CreatedAt:   time.Now(),
		},
	}
	suite.mockMilestoneService.On("ListMilestones", mock.Anything, suite.userID).Return(milestones, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/milestones", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListMilestonesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Milestones, 1)
	suite.Equal("Run a marathon", resp.Milestones[0].Title)
	suite.Equal("2026-10-18", resp.Milestones[0].AchieveDate)
	suite.mockMilestoneService.AssertExpectations(suite.T())
}

func (suite *MilestoneHandlerTestSuite) TestListMilestones_NoToken() {
	req, err := http.NewRequest(http.MethodGet, "/api/milestones", nil)
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockMilestoneService.AssertNotCalled(suite.T(), "ListMilestones")
}

func (suite *MilestoneHandlerTestSuite) TestCreateMilestone_Success() {
	achieveDate := "2026-10-18"
	req := dto.CreateMilestoneRequest{
		Title:       "Run a marathon",
		Description: "Sub four hours",
		AchieveDate: &achieveDate,
	}
	parsed := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	created := &domain.Milestone{
		MilestoneID: uuid.NewString(),
		UserID:      suite.userID,
		Title:       req.Title,
		Description: req.Description,
		AchieveDate: &parsed,
		CreatedAt:   time.Now(),
	}
	suite.mockMilestoneService.On("CreateMilestone", mock.Anything, suite.userID, req).Return(created, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/milestones", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MilestoneResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.MilestoneID, resp.ID)
	suite.Equal(suite.userID, resp.UserID)
	suite.mockMilestoneService.AssertExpectations(suite.T())
}

func (suite *MilestoneHandlerTestSuite) TestCreateMilestone_MissingTitle() {
	w := suite.performRequest(http.MethodPost, "/api/milestones", gin.H{
		"description": "no title",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMilestoneService.AssertNotCalled(suite.T(), "CreateMilestone")
}

func (suite *MilestoneHandlerTestSuite) TestCreateMilestone_BadDateFormat() {
	w := suite.performRequest(http.MethodPost, "/api/milestones", gin.H{
		"title":       "Run a marathon",
		"achieveDate": "18/10/2026",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMilestoneService.AssertNotCalled(suite.T(), "CreateMilestone")
}

func (suite *MilestoneHandlerTestSuite) TestGetMilestone_NotFound() {
	milestoneID := uuid.NewString()
	suite.mockMilestoneService.On("GetMilestoneByID", mock.Anything, suite.userID, milestoneID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/milestones/"+milestoneID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockMilestoneService.AssertExpectations(suite.T())
}

func (suite *MilestoneHandlerTestSuite) TestUpdateMilestone_Success() {
	milestoneID := uuid.NewString()
	completed := true
	req := dto.UpdateMilestoneRequest{Completed: &completed}
	updated := &domain.Milestone{
		MilestoneID: milestoneID,
		UserID:      suite.userID,
		Title:       "Run a marathon",
		Completed:   true,
		CreatedAt:   time.Now(),
	}
	suite.mockMilestoneService.On("UpdateMilestone", mock.Anything, suite.userID, milestoneID, req).
		Return(updated, nil).Once()

	w := suite.performRequest(http.MethodPut, "/api/milestones/"+milestoneID, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MilestoneResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Completed)
	suite.mockMilestoneService.AssertExpectations(suite.T())
}

func (suite *MilestoneHandlerTestSuite) TestDeleteMilestone_Success() {
	milestoneID := uuid.NewString()
	suite.mockMilestoneService.On("DeleteMilestone", mock.Anything, suite.userID, milestoneID).Return(nil).Once()

	w := suite.performRequest(http.MethodDelete, "/api/milestones/"+milestoneID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockMilestoneService.AssertExpectations(suite.T())
}

func (suite *MilestoneHandlerTestSuite) TestDeleteMilestone_NotFound() {
	milestoneID := uuid.NewString()
	suite.mockMilestoneService.On("DeleteMilestone", mock.Anything, suite.userID, milestoneID).
		Return(apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodDelete, "/api/milestones/"+milestoneID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockMilestoneService.AssertExpectations(suite.T())
}

func TestMilestoneHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MilestoneHandlerTestSuite))
}
