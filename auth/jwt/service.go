// Package jwt issues and verifies the HMAC-signed access tokens handed out
// by /login.
//
// Service is generic over the claims type so the auth package can own its
// Claims without an import cycle:
//
//	tokens, err := jwt.NewService(&cfg.Auth.JWT, auth.NewClaims)
//	token, err := tokens.Issue(&auth.Claims{UserID: 1, Username: "admin"})
//	claims, err := tokens.Verify(token)
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed means the token could not be decoded or its claims are unusable.
	ErrMalformed = errors.New("jwt: malformed token")

	// ErrBadSignature means the signature does not verify under the configured key and method.
	ErrBadSignature = errors.New("jwt: bad signature")

	// ErrExpired means the signature is valid but exp has passed.
	ErrExpired = errors.New("jwt: token expired")
)

// Stamper is implemented by claims that take iat, exp, iss and aud from
// the service at issue time.
type Stamper interface {
	Stamp(issuedAt, expiresAt time.Time, issuer string, audience []string)
}

// Service issues and verifies tokens carrying claims of type T.
type Service[T gojwt.Claims] struct {
	method *gojwt.SigningMethodHMAC
	key    []byte
	ttl    time.Duration
	issuer string
	aud    []string
	empty  func() T
	now    func() time.Time
	parser *gojwt.Parser
}

// Option configures a Service.
type Option func(*settings)

type settings struct {
	now func() time.Time
}

// WithClock sets the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// NewService creates a token service. empty returns a fresh T to decode into.
func NewService[T gojwt.Claims](cfg *Config, empty func() T, opts ...Option) (*Service[T], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	st := settings{now: time.Now}
	for _, opt := range opts {
		opt(&st)
	}

	s := &Service[T]{
		method: hmacMethods[cfg.Method],
		key:    []byte(cfg.Secret),
		ttl:    cfg.AccessTokenTTL,
		issuer: cfg.Issuer,
		aud:    cfg.Audience,
		empty:  empty,
		now:    st.now,
	}

	popts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.method.Alg()}),
		gojwt.WithTimeFunc(s.now),
		gojwt.WithExpirationRequired(),
		gojwt.WithIssuedAt(),
	}
	if s.issuer != "" {
		popts = append(popts, gojwt.WithIssuer(s.issuer))
	}
	if len(s.aud) > 0 {
		popts = append(popts, gojwt.WithAudience(s.aud[0]))
	}
	s.parser = gojwt.NewParser(popts...)
	return s, nil
}

// Issue stamps claims that implement Stamper with iat=now and exp=now+TTL,
// then signs them.
func (s *Service[T]) Issue(claims T) (string, error) {
	if st, ok := any(claims).(Stamper); ok {
		now := s.now()
		st.Stamp(now, now.Add(s.ttl), s.issuer, s.aud)
	}
	signed, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks method, signature, iat and exp. Errors wrap ErrMalformed,
// ErrBadSignature or ErrExpired.
func (s *Service[T]) Verify(token string) (T, error) {
	var zero T
	parsed, err := s.parser.ParseWithClaims(token, s.empty(), func(*gojwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return zero, fmt.Errorf("%w: %v", classify(err), err)
	}
	claims, ok := parsed.Claims.(T)
	if !ok || !parsed.Valid {
		return zero, ErrMalformed
	}
	return claims, nil
}

// classify maps golang-jwt errors onto the package sentinels. The parser
// checks the method and signature before any claim, so an expiry error
// always comes from a correctly signed token.
func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid),
		errors.Is(err, gojwt.ErrTokenUnverifiable):
		return ErrBadSignature
	default:
		return ErrMalformed
	}
}

// Reason names the rejection for logs and span attributes.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "rejected"
	}
}
