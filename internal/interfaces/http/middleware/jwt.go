package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/infrastructure/auth"
	"github.com/innkeep/backend/internal/infrastructure/logger"
	"github.com/innkeep/backend/internal/interfaces/http/dto"
)

// Gin context keys populated by the JWT middleware.
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
)

const bearerPrefix = "Bearer "

// JWTMiddlewareConfig configures the authentication middleware.
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths pass through without a token. Login and the health
	// checks live here.
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultJWTConfig skips the health endpoints and the auth endpoints
// that hand out tokens in the first place.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// JWTAuthMiddleware authenticates requests with the default skip list.
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig validates the bearer token and stores the
// claims in the gin context. The user ID is also attached to the
// request-scoped logger so every downstream entry carries it.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		token, err := bearerToken(c)
		if err != nil {
			rejectUnauthenticated(c, cfg.Logger, err)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			rejectUnauthenticated(c, cfg.Logger, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	switch {
	case header == "":
		return "", errors.New("missing authorization header")
	case !strings.HasPrefix(header, bearerPrefix):
		return "", errors.New("authorization header is not a bearer token")
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}

func rejectUnauthenticated(c *gin.Context, log *zap.Logger, err error) {
	if log != nil {
		log.Warn("authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	message := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	case errors.Is(err, auth.ErrInvalidTokenType), errors.Is(err, auth.ErrInvalidToken):
		code = dto.ErrCodeTokenInvalid
		message = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, getRequestIDFromContext(c)))
}

// RequireRole rejects authenticated requests whose role is not in the
// allowed set. Must run after the JWT middleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if role := GetJWTRole(c); role == "" || !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient role for this operation", getRequestIDFromContext(c)))
			return
		}
		c.Next()
	}
}

func ctxString(c *gin.Context, key string) string {
	if v, exists := c.Get(key); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetJWTClaims returns the validated claims, or nil outside an
// authenticated request.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(JWTClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func GetJWTUserID(c *gin.Context) string { return ctxString(c, JWTUserIDKey) }

func GetJWTUsername(c *gin.Context) string { return ctxString(c, JWTUsernameKey) }

func GetJWTRole(c *gin.Context) string { return ctxString(c, JWTRoleKey) }
