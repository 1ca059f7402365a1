package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/baharkarakas/ppob-wallet/internal/api/httpx"
)

type tokenBucket struct {
	mu     sync.Mutex
	tokens int
	last   time.Time
	rate   int
	burst  int
	now    func() time.Time
}

func (tb *tokenBucket) take() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	if elapsed := now.Sub(tb.last).Seconds(); elapsed > 0 {
		if refill := int(elapsed * float64(tb.rate)); refill > 0 {
			tb.tokens = min(tb.tokens+refill, tb.burst)
			tb.last = now
		}
	}
	if tb.tokens == 0 {
		return false
	}
	tb.tokens--
	return true
}

// RateLimit is a process-wide token bucket refilled at rps. rps <= 0 disables it.
func RateLimit(rps int) func(http.Handler) http.Handler {
	return rateLimit(rps, time.Now)
}

func rateLimit(rps int, now func() time.Time) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	tb := &tokenBucket{tokens: rps, last: now(), rate: rps, burst: rps, now: now}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tb.take() {
				httpx.WriteJSON(w, http.StatusTooManyRequests, httpx.ClientError{
					Status:  http.StatusTooManyRequests,
					Message: "Terlalu banyak permintaan",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
