package backend_handler_http

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"store-admin/pkg/dmodel"
	"store-admin/services/backend/internal"
	backend_controller "store-admin/services/backend/internal/controller"
)

// -------------------------------------------------------------------
// request log
// -------------------------------------------------------------------

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}

// -------------------------------------------------------------------
// rate limiting
// -------------------------------------------------------------------

// RateLimiter counts requests per client IP in fixed Redis windows.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow increments the counter of key and reports whether it is still within the limit.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= rl.limit, nil
}

// Middleware rejects with 429 once a client exceeds the limit. Redis failures let the
// request through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := rl.Allow(r.Context(), "ratelimit:"+clientIP(r))
		if err != nil {
			log.Printf("Error checking rate limit: %v", err)
		} else if !allowed {
			writeMessage(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// -------------------------------------------------------------------
// sessions
// -------------------------------------------------------------------

type userKey struct{}

// UserFromContext returns the user attached by RequireSession.
func UserFromContext(ctx context.Context) (*dmodel.User, bool) {
	user, ok := ctx.Value(userKey{}).(*dmodel.User)
	return user, ok
}

// RequireSession answers 401 unless the request carries a valid session cookie.
func RequireSession(auth *backend_controller.Controller_Auth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.Authenticate(r.Context(), sessionToken(r))
			if errors.Is(err, internal.ErrUnauthenticated) {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if err != nil {
				writeError(w, err, "User", "checking session")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
		})
	}
}
