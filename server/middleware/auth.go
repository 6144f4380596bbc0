package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/auth"
	"github.com/kbukum/authgate/auth/authctx"
	"github.com/kbukum/authgate/auth/jwt"
	"github.com/kbukum/authgate/errors"
	"github.com/kbukum/authgate/logger"
)

const (
	bearerPrefix = "Bearer "

	// AccessTokenRequiredMessage is the 401 body text when no token is supplied.
	AccessTokenRequiredMessage = "Access token required"
)

// Auth returns the request gate for protected route groups. A missing
// Authorization header, another scheme or an empty token is answered with
// 401. A token that fails verification is answered with 403. Verified
// claims are attached with authctx.Attach.
func Auth(tokens auth.TokenVerifier, log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("gate")

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, errors.Unauthorized(AccessTokenRequiredMessage))
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			log.WithContext(c.Request.Context()).Debug("token rejected", logger.Fields(
				logger.FieldOutcome, jwt.Reason(err),
				"path", c.Request.URL.Path,
			))
			if stderrors.Is(err, jwt.ErrExpired) {
				abortWithError(c, errors.TokenExpired())
			} else {
				abortWithError(c, errors.InvalidToken())
			}
			return
		}

		authctx.Attach(c, claims)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Surrounding whitespace is ignored. A blank token or one with
// inner whitespace counts as no token at all.
func bearerToken(header string) (string, bool) {
	rest, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", false
	}
	token := strings.TrimSpace(rest)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
