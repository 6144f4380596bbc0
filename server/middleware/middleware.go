package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/errors"
)

// Middleware wraps the server's whole handler, so it also sees requests
// that match no gin route.
type Middleware func(http.Handler) http.Handler

// Chain applies ms with the first one outermost.
func Chain(ms ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, m := range slices.Backward(ms) {
			h = m(h)
		}
		return h
	}
}

func abortWithError(c *gin.Context, err *errors.AppError) {
	c.AbortWithStatusJSON(err.Status(), err.Body())
}
