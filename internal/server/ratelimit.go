package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// A register produces at most a few scans per second; anything past this is a
// stuck client or a script.
const (
	mutationRatePerSecond = 20
	mutationBurst         = 40
)

// mutationRateLimiter limits mutating requests per client IP. All mutation
// routes share one store so the limit applies across them.
func (s *Server) mutationRateLimiter() echo.MiddlewareFunc {
	if s.rateLimiter == nil {
		s.rateLimiter = middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(mutationRatePerSecond),
				Burst:     mutationBurst,
				ExpiresIn: 3 * time.Minute,
			},
		))
	}
	return s.rateLimiter
}
