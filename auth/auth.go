package auth

// TokenVerifier checks a bearer token and returns the identity it carries.
// *jwt.Service[*Claims] satisfies it.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// TokenIssuer signs access tokens for authenticated users.
// *jwt.Service[*Claims] satisfies it.
type TokenIssuer interface {
	Issue(claims *Claims) (string, error)
}
