package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsboard-api/internal/database"
	"github.com/newsboard-api/internal/models"
	"github.com/rs/zerolog"
)

// errorMiddleware is the single failure-mapping stage. Handlers attach
// errors with c.Error and return without writing a body.
func errorMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, msg := classifyError(err)

		if status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString("request_id")).
				Msg("Unhandled error")
		}

		c.JSON(status, models.ErrorResponse{Msg: msg})
	}
}

// classifyError maps an error onto a status and client-safe message:
// application errors carry their own, store type and constraint failures
// are client input problems, everything else is a 500.
func classifyError(err error) (int, string) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Msg
	}
	if database.IsConstraintError(err) {
		return http.StatusBadRequest, models.MsgBadRequest
	}
	return http.StatusInternalServerError, models.MsgInternalError
}

// abortWith attaches err for the error stage and stops the chain
func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
