package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func tracedQuery() (string, int64) {
	return "SELECT * FROM bookings", 3
}

func TestGormLogger_TraceFailure(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), tracedQuery, errors.New("connection reset"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "query failed", entry.Message)
	assert.Equal(t, "SELECT * FROM bookings", entry.ContextMap()["sql"])
}

func TestGormLogger_RecordNotFoundIsNotAnError(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), tracedQuery, gormlogger.ErrRecordNotFound)

	assert.Zero(t, logs.Len())
}

func TestGormLogger_SlowQueryLogsWarn(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Warn)

	gl.Trace(context.Background(), time.Now().Add(-time.Second), tracedQuery, nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "slow query", entry.Message)
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Info)
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-77")

	gl.Trace(ctx, time.Now(), tracedQuery, nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-77", logs.All()[0].ContextMap()["request_id"])
}

func TestGormLogger_LogModeSilent(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Info)
	silent := gl.LogMode(gormlogger.Silent)

	silent.(*GormLogger).Trace(context.Background(), time.Now().Add(-time.Second), tracedQuery, errors.New("ignored"))

	assert.Zero(t, logs.Len())
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"anything", gormlogger.Warn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapGormLogLevel(tt.in), tt.in)
	}
}
