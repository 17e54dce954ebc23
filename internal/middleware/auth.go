package middleware

import (
	"log/slog"
	"strings"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/utils"
	"github.com/gin-gonic/gin"
)

// errAuthenticationFailed is the single error returned for every rejected
// credential, so clients cannot tell a missing token from an expired one.
var errAuthenticationFailed = apperrors.Unauthorized(apperrors.CodeInvalidToken, "Authentication failed", nil)

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and stores the resulting domain.Caller in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortWithError(c, errAuthenticationFailed)
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenString) == "" {
			logger.Warn("Authorization header format invalid")
			abortWithError(c, errAuthenticationFailed)
			return
		}

		claims, err := utils.ParseAndValidateJWT(strings.TrimSpace(tokenString), jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			abortWithError(c, errAuthenticationFailed)
			return
		}

		caller := utils.CallerFromClaims(claims)

		enrichedLogger := logger.With(
			slog.String("user_id", caller.ActorID),
			slog.String("role", string(caller.Role)),
		)
		ctx := WithCaller(c.Request.Context(), caller)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
