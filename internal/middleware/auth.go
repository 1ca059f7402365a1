package middleware

import (
	"net/http"

	"github.com/baharkarakas/ppob-wallet/internal/api/httpx"
	"github.com/baharkarakas/ppob-wallet/internal/apperr"
	"github.com/baharkarakas/ppob-wallet/internal/auth"
)

// TokenStatusInvalid is the envelope status the API contract uses for every
// rejected token.
const TokenStatusInvalid = 108

// ErrInvalidToken is what the gate writes. It carries no cause.
var ErrInvalidToken = &apperr.Error{
	Kind:    apperr.KindUnauthenticated,
	Status:  http.StatusUnauthorized,
	Code:    TokenStatusInvalid,
	Message: "Token tidak valid atau kadaluwarsa",
}

type Verifier interface {
	Verify(authorization string) (auth.Claims, error)
}

type AuthMiddleware struct {
	Codec Verifier
}

func NewAuthMiddleware(codec Verifier) *AuthMiddleware {
	return &AuthMiddleware{Codec: codec}
}

// Auth admits a request only with a valid bearer token and stores its claims in
// the request context. It never touches storage.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.Codec.Verify(r.Header.Get("Authorization"))
		if err != nil {
			httpx.WriteError(w, r, nil, RequestIDFrom(r.Context()), ErrInvalidToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}
