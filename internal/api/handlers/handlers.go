// Package handlers adapts HTTP requests to the wallet services.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/ppob-wallet/internal/api/httpx"
	"github.com/baharkarakas/ppob-wallet/internal/auth"
	"github.com/baharkarakas/ppob-wallet/internal/middleware"
)

type base struct{ log *slog.Logger }

func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteError(w, r, b.log, middleware.RequestIDFrom(r.Context()), err)
}

// claims returns the caller's identity. Routes using it sit behind the gate, so
// a miss means the route was wired without it.
func (b base) claims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	c, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		b.fail(w, r, middleware.ErrInvalidToken)
	}
	return c, ok
}
