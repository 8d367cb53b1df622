package transport

import (
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/customer-hub/cmd/config"
	"github.com/muhammadheryan/customer-hub/constant"
	redisrepo "github.com/muhammadheryan/customer-hub/repository/redis"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
	"github.com/muhammadheryan/customer-hub/utils/logger"
	"go.uber.org/zap"
)

// RateLimitMiddleware enforces a fixed-window request budget per client IP,
// counted in Redis so the limit holds across instances. Redis trouble fails
// open, it never takes the API down.
func RateLimitMiddleware(cfg *config.Config, redisRepo redisrepo.Repository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + clientIP(r)

			count, err := redisRepo.IncrWithTTL(r.Context(), key, cfg.RateLimit.Window)
			if err != nil {
				logger.Warn("rate limit counter unavailable", zap.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			if count > cfg.RateLimit.Max {
				writeError(w, cerr.SetCustomError(constant.ErrTooManyRequest))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
