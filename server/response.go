package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/errors"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/observability"
)

// RespondWithError writes the {"error": "..."} body for err. Errors that are
// not *errors.AppError become a 500. The cause of every 5xx is logged here
// and never sent to the client.
func RespondWithError(c *gin.Context, err error) {
	appErr := errors.Wrap(err)
	if appErr == nil {
		appErr = errors.Internal(nil)
	}
	if appErr.Status() >= http.StatusInternalServerError {
		fields := logger.Fields(
			"code", string(appErr.Code),
			"path", c.Request.URL.Path,
		)
		if appErr.Cause != nil {
			fields[logger.FieldError] = appErr.Cause.Error()
		}
		logger.WithContext(c.Request.Context()).WithComponent("http").Error("Request failed", fields)
		observability.SetSpanError(c.Request.Context(), appErr)
	}
	c.AbortWithStatusJSON(appErr.Status(), appErr.Body())
}

// RespondOK writes body as a 200 JSON response.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}
