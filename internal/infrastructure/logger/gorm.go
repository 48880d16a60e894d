package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold is the latency above which a query logs at warn.
const slowQueryThreshold = 200 * time.Millisecond

// GormLogger adapts zap to gorm's logger interface. Record-not-found is
// not an error at this layer; repositories translate it to the domain's
// ErrNotFound themselves.
type GormLogger struct {
	zl    *zap.Logger
	level gormlogger.LogLevel
}

// NewGormLogger wraps the service logger for gorm at the given level.
func NewGormLogger(zl *zap.Logger, level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{zl: zl.Named("gorm"), level: level}
}

// LogMode implements gormlogger.Interface.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface.
func (l *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.zl.Sugar().Infof(msg, args...)
	}
}

// Warn implements gormlogger.Interface.
func (l *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.zl.Sugar().Warnf(msg, args...)
	}
}

// Error implements gormlogger.Interface.
func (l *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.zl.Sugar().Errorf(msg, args...)
	}
}

// Trace logs each executed statement with its latency and row count,
// carrying the request ID through when the context has one.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && l.level >= gormlogger.Error:
		l.zl.Error("query failed", append(fields, zap.Error(err))...)
	case elapsed >= slowQueryThreshold && l.level >= gormlogger.Warn:
		l.zl.Warn("slow query", fields...)
	case l.level >= gormlogger.Info:
		l.zl.Debug("query", fields...)
	}
}

// MapGormLogLevel aligns gorm's verbosity with the service log level.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
