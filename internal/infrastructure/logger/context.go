package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey keeps this package's context values from colliding with
// string keys elsewhere.
type contextKey string

const (
	LoggerKey    contextKey = "logger"
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
)

// WithContext attaches the logger to the context. Code below the HTTP
// layer retrieves it with FromContext instead of taking a logger
// parameter.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the context's logger, or a no-op logger when none
// was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID and returns a logger enriched
// with it. The gorm logger reads the ID back via GetRequestID.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	enriched := logger.With(zap.String("request_id", requestID))
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	return WithContext(ctx, enriched), enriched
}

// WithUserID stores the authenticated user ID and returns a logger
// enriched with it.
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	enriched := logger.With(zap.String("user_id", userID))
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return WithContext(ctx, enriched), enriched
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}
