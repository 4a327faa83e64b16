package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/campsite-reservation/internal/config"
)

// NewRateLimit builds a fixed-window rate limiter keyed by client IP.
// Each window of cfg.Window allows cfg.Limit requests; the counter lives
// in Redis so the bound holds across replicas.  When the limiter is
// disabled, no Redis client is available, or Redis errors mid-request,
// requests pass through unthrottled.
func NewRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil || cfg.Limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			slot := time.Now().Unix() / int64(window/time.Second)
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, c.RealIP(), slot)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, window).Err()
			}
			if count > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After",
					fmt.Sprintf("%d", int(window/time.Second)))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"message": "too many requests",
					"error":   true,
				})
			}
			return next(c)
		}
	}
}
