package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewIPLimiter builds an in-memory limiter from a formatted rate such as "5-M".
func NewIPLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit creates a Gin middleware for rate limiting requests by client IP.
// The X-RateLimit-* headers are set by the limiter driver.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return limitergin.NewMiddleware(limiterInstance,
		limitergin.WithLimitReachedHandler(func(c *gin.Context) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("ip", c.ClientIP()))
			WriteError(c, http.StatusTooManyRequests, apperrors.CodeTooManyRequests, "Too many requests. Please try again later.", nil)
		}),
		limitergin.WithErrorHandler(func(c *gin.Context, err error) {
			abortWithError(c, fmt.Errorf("rate limit check: %w", err))
		}),
	)
}
