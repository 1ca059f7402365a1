package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baharkarakas/ppob-wallet/internal/money"
)

// DefaultTokenTTL is the lifetime of an issued access token.
const DefaultTokenTTL = 12 * time.Hour

// ErrInvalidToken is returned for every verification failure. The cause is
// wrapped for logs but callers only ever test for this value.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity carried inside a token. Balance is the value at login
// time and goes stale after any settlement.
type Claims struct {
	Email        string      `json:"email"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	ProfileImage *string     `json:"profile_image"`
	Balance      money.Money `json:"balance"`
}

// envelope is the signed JWT body; Data is the sealed Claims.
type envelope struct {
	Data string `json:"data"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies bearer tokens whose payload is encrypted with a
// key independent of the signing secret.
type TokenCodec struct {
	secret []byte
	cipher *PayloadCipher
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, c *PayloadCipher, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{
		secret: []byte(secret),
		cipher: c,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the codec that reads time from now.
func (tc *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *tc
	cp.now = now
	return &cp
}

func (tc *TokenCodec) Issue(c Claims) (string, time.Time, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", time.Time{}, err
	}
	sealed, err := tc.cipher.Seal(payload)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("seal claims: %w", err)
	}

	now := tc.now()
	exp := now.Add(tc.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, envelope{
		Data: sealed,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify accepts the raw Authorization header value ("Bearer <token>").
func (tc *TokenCodec) Verify(header string) (Claims, error) {
	raw, err := bearerToken(header)
	if err != nil {
		return Claims{}, invalid(err)
	}

	var env envelope
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tc.now),
	)
	if _, err := parser.ParseWithClaims(raw, &env, func(*jwt.Token) (any, error) {
		return tc.secret, nil
	}); err != nil {
		return Claims{}, invalid(err)
	}

	plain, err := tc.cipher.Open(env.Data)
	if err != nil {
		return Claims{}, invalid(err)
	}
	var c Claims
	if err := json.Unmarshal(plain, &c); err != nil {
		return Claims{}, invalid(err)
	}
	if c.Email == "" {
		return Claims{}, invalid(errors.New("empty subject"))
	}
	return c, nil
}

func invalid(cause error) error {
	return fmt.Errorf("%w: %v", ErrInvalidToken, cause)
}

func bearerToken(header string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("missing bearer token")
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", errors.New("missing bearer token")
	}
	return tok, nil
}
