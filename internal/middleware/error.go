package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/healthhub/healthhub-api/pkg/errors"
	"github.com/healthhub/healthhub-api/pkg/metrics"
)

// ErrorHandler turns errors attached to the gin context into the JSON
// envelope the frontend expects. Unrecognized errors become a 500 with
// a generic message so internals never leak.
func ErrorHandler(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if appErr, ok := errors.AsAppError(err); ok {
			status := appErr.StatusCode()
			if appErr.Code == errors.ErrInternal {
				log.Error().
					Err(appErr.Unwrap()).
					Str("path", c.Request.URL.Path).
					Msg("internal error")
			}
			countError(m, c, status)
			c.JSON(status, gin.H{
				"success": false,
				"message": appErr.Message,
			})
			return
		}

		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
		countError(m, c, http.StatusInternalServerError)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	}
}

func countError(m *metrics.Metrics, c *gin.Context, status int) {
	if m == nil {
		return
	}
	m.ErrorTotal.WithLabelValues(c.Request.Method, c.FullPath(), strconv.Itoa(status)).Inc()
}
