package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func observedEngine(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(ginRequestIDKey, "req-123")
		c.Next()
	})
	engine.Use(RequestLogger(zap.New(core)))
	return engine, logs
}

func TestRequestLogger(t *testing.T) {
	engine, logs := observedEngine(t)
	engine.GET("/bookings", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings?page=2", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "request", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/bookings", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "page=2", fields["query"])
}

func TestRequestLogger_ErrorLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"client error logs warn", http.StatusNotFound, zapcore.WarnLevel},
		{"server error logs error", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, logs := observedEngine(t)
			engine.GET("/x", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.level, logs.All()[0].Level)
		})
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := gin.New()
	engine.Use(Recovery(zap.New(core)))
	engine.GET("/boom", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "handler panic", entry.Message)
	assert.Equal(t, "unexpected", entry.ContextMap()["panic"])
}

func TestFromGin(t *testing.T) {
	t.Run("returns the request-scoped logger", func(t *testing.T) {
		engine, logs := observedEngine(t)
		engine.GET("/x", func(c *gin.Context) {
			FromGin(c).Info("from handler")
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		// handler entry plus the request entry
		require.Equal(t, 2, logs.Len())
		assert.Equal(t, "from handler", logs.All()[0].Message)
		assert.Equal(t, "req-123", logs.All()[0].ContextMap()["request_id"])
	})

	t.Run("no-op outside a request", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.NotNil(t, FromGin(c))
	})
}
