// Package authctx carries the identity the request gate verified.
//
// The gate calls Attach once the bearer token checks out. Handlers on the
// protected group read it back with From, or FromContext when only a
// context.Context is at hand.
package authctx

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/auth"
)

// ErrNoClaims means the route ran without the gate in front of it.
var ErrNoClaims = errors.New("authctx: no claims in context")

const ginKey = "authgate.claims"

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// FromContext returns the claims stored by WithClaims.
func FromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}

// Attach stores claims on the gin context and on its request context so
// downstream code that only sees the *http.Request finds them too.
func Attach(c *gin.Context, claims *auth.Claims) {
	c.Set(ginKey, claims)
	c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
}

// From returns the claims attached to c.
func From(c *gin.Context) (*auth.Claims, bool) {
	if v, ok := c.Get(ginKey); ok {
		if claims, ok := v.(*auth.Claims); ok && claims != nil {
			return claims, true
		}
	}
	return FromContext(c.Request.Context())
}
