package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config carries the knobs for the standard middleware chain.
type Config struct {
	Logger *zap.Logger

	CORS *CORSConfig

	// Inbound HTTP limits, distinct from the dispatcher's outbound
	// provider rate.
	RateLimit      rate.Limit
	RateLimitBurst int

	RequestTimeout time.Duration
}

// Chain assembles the shared middleware stack. RequestID sits outermost so
// every other layer, the access log and panic reports included, can tag its
// output with the id.
func Chain(config *Config) func(http.Handler) http.Handler {
	rateLimiter := NewRateLimiter(config.RateLimit, config.RateLimitBurst)

	return func(handler http.Handler) http.Handler {
		h := handler

		h = Timeout(config.RequestTimeout)(h)
		h = rateLimiter.Middleware()(h)

		if config.CORS != nil {
			h = CORS(config.CORS)(h)
		}

		h = Recovery(config.Logger)(h)
		h = Logger(config.Logger)(h)
		h = RequestID(h)

		return h
	}
}
