// Package endpoint holds handlers the server registers on its own.
package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/version"
)

// Version reports build information.
func Version() gin.HandlerFunc {
	info := version.Get()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}
