package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimitConfig holds rate limit settings.
type RateLimitConfig struct {
	// Rate per IP ("100-M" = 100/min). Empty disables.
	RatePerIP string
	// Rate per authenticated user ("120-M"). Empty disables.
	RatePerUser string
	// Redis shares counters between instances. Nil keeps them in memory.
	Redis *redis.Client
}

// NewIPRateLimiter returns middleware that limits by client IP.
// rateFormatted: "100-M", "1000-H", "50-S".
func NewIPRateLimiter(cfg RateLimitConfig) (func(next http.Handler) http.Handler, error) {
	instance, err := newLimiter(cfg.RatePerIP, cfg.Redis, "skillsnap:rl:ip")
	if err != nil || instance == nil {
		return noopMiddleware, err
	}
	return stdlib.NewMiddleware(instance).Handler, nil
}

// NewUserRateLimiter returns middleware that limits by the authenticated user.
// Use after AuthValidator.
func NewUserRateLimiter(cfg RateLimitConfig) (func(next http.Handler) http.Handler, error) {
	instance, err := newLimiter(cfg.RatePerUser, cfg.Redis, "skillsnap:rl:user")
	if err != nil || instance == nil {
		return noopMiddleware, err
	}
	return userLimitMiddleware(instance), nil
}

func newLimiter(rateFormatted string, rdb *redis.Client, prefix string) (*limiter.Limiter, error) {
	if rateFormatted == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, fmt.Errorf("rate %q: %w", rateFormatted, err)
	}
	var store limiter.Store
	if rdb != nil {
		store, err = redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: prefix})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix})
	}
	return limiter.New(store, rate), nil
}

func userLimitMiddleware(instance *limiter.Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx, err := instance.Get(r.Context(), "user:"+userID.String())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))
			if ctx.Reached {
				writeErr(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
