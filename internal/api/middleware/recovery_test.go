package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("RecoversFromPanicAndLogs", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

		router := gin.New()
		router.Use(CorrelationID())
		router.Use(Recovery(logger))
		router.GET("/panic", func(c *gin.Context) {
			panic("something went terribly wrong")
		})

		providedID := "test-correlation-id"
		req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
		req.Header.Set(CorrelationIDHeader, providedID)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

		errObj, ok := body["error"].(map[string]interface{})
		require.True(t, ok, "response should carry an error object")
		assert.Equal(t, "INTERNAL_SERVER_ERROR", errObj["code"])
		assert.Equal(t, "An internal server error occurred", errObj["message"])
		assert.Equal(t, providedID, body["correlation_id"])

		logged := logBuf.String()
		assert.Contains(t, logged, `"level":"ERROR"`)
		assert.Contains(t, logged, "Panic recovered")
		assert.Contains(t, logged, "something went terribly wrong")
		assert.Contains(t, logged, `"stack"`)
		assert.Contains(t, logged, `"path":"/panic"`)
		assert.Contains(t, logged, `"method":"GET"`)
	})

	t.Run("NoPanicNoEffect", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

		router := gin.New()
		router.Use(Recovery(logger))
		router.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, logBuf.String())
	})
}
