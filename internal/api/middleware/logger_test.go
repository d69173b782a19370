package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fplmate/pkg/logger"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()
	previous := logger.Logger
	logger.Logger = log
	t.Cleanup(func() { logger.Logger = previous })

	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/api/v1/recommend-team", func(c *gin.Context) {
		c.Status(http.StatusUnprocessableEntity)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommend-team?debug=1", nil)
	req.Header.Set("User-Agent", "curl/8.0")
	req.Header.Set(RequestIDHeader, "req-7")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "GET", entry.Data["http_method"])
	assert.Equal(t, "/api/v1/recommend-team", entry.Data["http_path"])
	assert.Equal(t, "curl/8.0", entry.Data["http_user_agent"])
	assert.Equal(t, http.StatusUnprocessableEntity, entry.Data["status"])
	assert.Equal(t, "req-7", entry.Data["request_id"])
	assert.Equal(t, "debug=1", entry.Data["query"])
}
