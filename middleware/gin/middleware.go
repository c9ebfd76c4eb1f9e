package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/fieldpipe"
	"github.com/reoring/fieldpipe/middleware"
)

// ValidateJSON validates the request body with v, stores the record in the
// request context, and aborts with an ErrorPayload on failure.
func ValidateJSON(v *fieldpipe.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := middleware.Check(v, c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithRecord(c.Request.Context(), rec))
		c.Next()
	}
}

// GetRecord fetches the validated record from gin.Context.
func GetRecord(c *gin.Context) (map[string]any, bool) {
	return middleware.RecordFromContext(c.Request.Context())
}
