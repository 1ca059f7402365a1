package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/ppob-wallet/internal/api/httpx"
)

// Recover turns a panic into the 500 envelope with a logged error id.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					httpx.WriteInternal(w, r, log, RequestIDFrom(r.Context()), fmt.Errorf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
