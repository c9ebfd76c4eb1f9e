package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/fieldpipe"
	"github.com/reoring/fieldpipe/middleware"
)

// ValidateJSON validates the request body with v and stores the record in the
// request context, or answers with an ErrorPayload.
func ValidateJSON(v *fieldpipe.Validator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rec, err := middleware.Check(v, c.Request().Body)
			if err != nil {
				return c.JSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			}
			c.SetRequest(c.Request().WithContext(middleware.ContextWithRecord(c.Request().Context(), rec)))
			return next(c)
		}
	}
}

// GetRecord fetches the validated record from echo.Context.
func GetRecord(c echo.Context) (map[string]any, bool) {
	return middleware.RecordFromContext(c.Request().Context())
}
