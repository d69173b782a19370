package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jstittsworth/fplmate/internal/api/middleware"
	"github.com/jstittsworth/fplmate/internal/models"
	"github.com/jstittsworth/fplmate/internal/presenter"
	"github.com/jstittsworth/fplmate/internal/scoring"
	"github.com/jstittsworth/fplmate/internal/services"
	"github.com/jstittsworth/fplmate/pkg/config"
	"github.com/jstittsworth/fplmate/pkg/logger"
	"github.com/jstittsworth/fplmate/pkg/utils"
)

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) RecommendTeam(ctx context.Context) (*services.Recommendation, error) {
	args := m.Called(ctx)
	rec, _ := args.Get(0).(*services.Recommendation)
	return rec, args.Error(1)
}

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) PredictRating(input scoring.RatingInput) (*scoring.RatingResult, error) {
	args := m.Called(input)
	result, _ := args.Get(0).(*scoring.RatingResult)
	return result, args.Error(1)
}

type RouterTestSuite struct {
	suite.Suite
	cfg         *config.Config
	recommender *MockRecommender
	predictor   *MockPredictor
	router      *gin.Engine
}

func (s *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Logger = quietLogger()
}

func (s *RouterTestSuite) SetupTest() {
	s.cfg = &config.Config{
		Season:             "2024-25",
		CorsOrigins:        []string{"http://localhost:5173"},
		RateLimitPerSecond: 100,
		RateLimitBurst:     100,
	}
	s.recommender = new(MockRecommender)
	s.predictor = new(MockPredictor)
	s.router = NewRouter(s.cfg, s.recommender, s.predictor)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func (s *RouterTestSuite) do(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (s *RouterTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)

	s.Equal(http.StatusOK, w.Code)
	response := s.decode(w)
	s.Equal("ok", response["status"])
	s.Equal("2024-25", response["season"])
	s.Equal(true, response["model_loaded"])
	s.NotEmpty(w.Header().Get(middleware.RequestIDHeader))
}

func (s *RouterTestSuite) TestRecommendTeam() {
	s.recommender.On("RecommendTeam", mock.Anything).Return(&services.Recommendation{
		ID: "rec-1",
		RecommendationResponse: presenter.RecommendationResponse{
			Team:        []presenter.PlayerView{{ID: 328, LastName: "Salah", Position: "MID", Price: 131, TeamName: "Liverpool"}},
			TotalPoints: 9.46,
			TotalSpend:  131,
			Status:      models.SquadPartial,
			Shortfalls:  map[models.Position]int{models.PositionForward: 3},
		},
	}, nil)

	w := s.do(http.MethodGet, "/api/v1/recommend-team", nil)

	s.Equal(http.StatusOK, w.Code)
	response := s.decode(w)
	s.Equal(true, response["success"])

	data := response["data"].(map[string]interface{})
	s.Equal("rec-1", data["recommendation_id"])
	s.Equal(9.46, data["total_points"])
	s.Equal(131.0, data["total_spend"])
	s.Equal("partial", data["status"])
	s.Equal(map[string]interface{}{"FWD": 3.0}, data["shortfalls"])

	team := data["team"].([]interface{})
	s.Require().Len(team, 1)
	s.Equal("Liverpool", team[0].(map[string]interface{})["teamName"])
	s.recommender.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestRecommendTeam_Errors() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing metadata", &models.DataIntegrityError{PlayerID: 99, Reason: "no metadata"}, http.StatusInternalServerError, utils.ErrCodeDataIntegrity},
		{"missing file", &models.ResourceNotFoundError{Path: "teams.csv"}, http.StatusInternalServerError, utils.ErrCodeResourceNotFound},
		{"empty", fmt.Errorf("select: %w", models.ErrEmptyResult), http.StatusUnprocessableEntity, utils.ErrCodeEmptyResult},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.recommender.On("RecommendTeam", mock.Anything).Return(nil, tt.err)

			w := s.do(http.MethodGet, "/api/v1/recommend-team", nil)

			s.Equal(tt.wantStatus, w.Code)
			response := s.decode(w)
			s.Equal(false, response["success"])
			appErr := response["error"].(map[string]interface{})
			s.Equal(tt.wantCode, appErr["code"])
			s.Equal(tt.err.Error(), appErr["details"])
		})
	}
}

func (s *RouterTestSuite) TestRecommendTeam_RateLimited() {
	s.cfg.RateLimitPerSecond = 0.001
	s.cfg.RateLimitBurst = 1
	s.router = NewRouter(s.cfg, s.recommender, s.predictor)
	s.recommender.On("RecommendTeam", mock.Anything).Return(&services.Recommendation{ID: "rec-1"}, nil)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/recommend-team", nil).Code)

	w := s.do(http.MethodGet, "/api/v1/recommend-team", nil)
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.Equal(utils.ErrCodeRateLimited, s.decode(w)["error"].(map[string]interface{})["code"])
	s.recommender.AssertNumberOfCalls(s.T(), "RecommendTeam", 1)
}

func (s *RouterTestSuite) TestPredictRating() {
	input := scoring.RatingInput{"minutes": 90, "price": 6.5, "element_type": 3}
	s.predictor.On("PredictRating", input).Return(&scoring.RatingResult{PredictedRating: 5.5, BasePoints: 4}, nil)

	body, _ := json.Marshal(input)
	w := s.do(http.MethodPost, "/api/v1/predict-rating", body)

	s.Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].(map[string]interface{})
	s.Equal(5.5, data["predicted_rating"])
	s.Equal(4.0, data["base_points"])
	s.predictor.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestPredictRating_Errors() {
	s.Run("invalid json", func() {
		w := s.do(http.MethodPost, "/api/v1/predict-rating", []byte(`{"minutes": "ninety"}`))
		s.Equal(http.StatusBadRequest, w.Code)
		s.predictor.AssertNotCalled(s.T(), "PredictRating", mock.Anything)
	})

	s.Run("missing features", func() {
		s.predictor.On("PredictRating", mock.Anything).
			Return(nil, fmt.Errorf("%w: saves", scoring.ErrMissingFeatures)).Once()

		w := s.do(http.MethodPost, "/api/v1/predict-rating", []byte(`{"minutes": 90}`))
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal(utils.ErrCodeValidation, s.decode(w)["error"].(map[string]interface{})["code"])
	})

	s.Run("model failure", func() {
		s.predictor.On("PredictRating", mock.Anything).
			Return(nil, fmt.Errorf("expected 8 features, got 2")).Once()

		w := s.do(http.MethodPost, "/api/v1/predict-rating", []byte(`{"minutes": 90}`))
		s.Equal(http.StatusInternalServerError, w.Code)
		s.Equal(utils.ErrCodePrediction, s.decode(w)["error"].(map[string]interface{})["code"])
	})
}

func (s *RouterTestSuite) TestPredictRating_NoModel() {
	router := NewRouter(s.cfg, s.recommender, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict-rating", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *RouterTestSuite) TestCORS() {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommend-team", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Empty(w.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterTestSuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal("abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func (s *RouterTestSuite) TestUnknownRoute() {
	w := s.do(http.MethodGet, "/api/v1/recommend-squad", nil)

	s.Equal(http.StatusNotFound, w.Code)
	response := s.decode(w)
	s.Equal(false, response["success"])
	s.Equal(utils.ErrCodeNotFound, response["error"].(map[string]interface{})["code"])
}

func (s *RouterTestSuite) TestPanicRecovered() {
	s.router.GET("/boom", func(*gin.Context) {
		panic("boom")
	})

	w := s.do(http.MethodGet, "/boom", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal(utils.ErrCodeInternal, s.decode(w)["error"].(map[string]interface{})["code"])
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
