package auth

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/kbukum/authgate/auth/credential"
	"github.com/kbukum/authgate/auth/password"
	"github.com/kbukum/authgate/errors"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/observability"
)

// Login status values recorded on the auth.login span and metric.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// dummyPassword is hashed once so that unknown usernames cost one password
// verification, the same as known ones.
const dummyPassword = "authgate-unknown-user"

// Authenticator exchanges credentials for a signed session.
type Authenticator struct {
	store     *credential.Store
	hasher    password.Hasher
	issuer    TokenIssuer
	dummyHash string
	metrics   *observability.Metrics
	log       *logger.Logger
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithMetrics records login outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Authenticator) { a.metrics = m }
}

// WithLogger sets the logger. The global logger is used otherwise.
func WithLogger(l *logger.Logger) Option {
	return func(a *Authenticator) { a.log = l }
}

// NewAuthenticator creates an Authenticator over a credential store.
func NewAuthenticator(store *credential.Store, hasher password.Hasher, issuer TokenIssuer, opts ...Option) (*Authenticator, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("auth: prepare dummy hash: %w", err)
	}
	a := &Authenticator{
		store:     store,
		hasher:    hasher,
		issuer:    issuer,
		dummyHash: dummy,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.GetGlobalLogger()
	}
	a.log = a.log.WithComponent("auth")
	return a, nil
}

// Login verifies creds and issues an access token. An unknown user and a
// wrong password both fail with InvalidCredentials. A signing failure is
// Internal.
func (a *Authenticator) Login(ctx context.Context, creds Credentials) (*Session, error) {
	ctx, op := observability.StartLogin(ctx, logger.RequestIDFromContext(ctx), a.metrics)
	log := a.log.WithContext(ctx)

	session, err := a.login(creds)
	switch {
	case err == nil:
		op.SetUserID(session.Claims.UserID)
		op.End(ctx, StatusOK, nil)
		log.Info("login succeeded", logger.Fields(
			logger.FieldUserID, session.Claims.UserID,
			logger.FieldUsername, session.Claims.Username,
		))
		return session, nil

	case isClientError(err):
		op.End(ctx, StatusInvalid, nil)
		log.Info("login rejected", logger.Fields(
			logger.FieldUsername, creds.Username,
			logger.FieldOutcome, errorCode(err),
		))
		return nil, err

	default:
		op.End(ctx, StatusError, err)
		log.Error("login failed", logger.ErrorFields("login", err), logger.Fields(logger.FieldUsername, creds.Username))
		return nil, err
	}
}

func (a *Authenticator) login(creds Credentials) (*Session, error) {
	record, found := a.store.FindByUsername(creds.Username)
	if !found {
		_ = a.hasher.Verify(creds.Password, a.dummyHash)
		return nil, errors.InvalidCredentials()
	}

	if err := a.hasher.Verify(creds.Password, record.PasswordHash); err != nil {
		if stderrors.Is(err, password.ErrMalformedHash) {
			a.log.Warn("stored password hash is malformed", logger.Fields(logger.FieldUsername, record.Username))
		}
		return nil, errors.InvalidCredentials()
	}

	claims := &Claims{UserID: record.ID, Username: record.Username}
	token, err := a.issuer.Issue(claims)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return &Session{Token: token, Claims: claims}, nil
}

func isClientError(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return ok && appErr.Status() < 500
}

func errorCode(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return ""
}
