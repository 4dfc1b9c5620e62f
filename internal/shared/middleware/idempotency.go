package middleware

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// IdempotencyHeader is the standard HTTP header for idempotency keys
	IdempotencyHeader = "Idempotency-Key"

	// idempotencyCacheTTL defines how long responses are cached in Redis
	idempotencyCacheTTL = 24 * time.Hour

	// lockTimeout prevents indefinite locks if a request crashes
	lockTimeout = 10 * time.Second

	idempotencyKeyPrefix = "idempotency:"
	lockKeyPrefix        = "idempotency-lock:"
)

// idempotencyWriter captures the response so it can be replayed for a
// repeated key.
type idempotencyWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *idempotencyWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *idempotencyWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// Idempotency makes money-moving requests safe to retry. A request carrying
// an Idempotency-Key header is executed once; repeats within the cache TTL
// get the stored response, and a concurrent repeat gets 409 while the first
// is still in flight. Requests without the header pass through untouched.
func Idempotency(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			cacheKey := idempotencyKeyPrefix + key
			lockKey := lockKeyPrefix + key

			cached, err := rdb.Get(ctx, cacheKey).Result()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Hit", "true")
				w.Write([]byte(cached))
				return
			}

			acquired, err := rdb.SetNX(ctx, lockKey, "processing", lockTimeout).Result()
			if err != nil {
				log.Printf("Idempotency: lock acquisition error: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if !acquired {
				http.Error(w, "A request with this idempotency key is already being processed", http.StatusConflict)
				return
			}
			defer func() {
				if err := rdb.Del(ctx, lockKey).Err(); err != nil {
					log.Printf("Idempotency: failed to release lock: %v", err)
				}
			}()

			wrapper := &idempotencyWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}
			next.ServeHTTP(wrapper, r)

			// Only successful responses are worth replaying
			if wrapper.statusCode >= 200 && wrapper.statusCode < 300 {
				if err := rdb.Set(ctx, cacheKey, wrapper.body.String(), idempotencyCacheTTL).Err(); err != nil {
					log.Printf("Idempotency: failed to cache response: %v", err)
				}
			}
		})
	}
}
