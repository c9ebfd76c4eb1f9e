package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/fieldpipe"
)

// DefaultMaxBodyBytes caps the request body read by Check.
const DefaultMaxBodyBytes int64 = 1 << 20

// ErrBodyTooLarge is returned by Check when the body exceeds the limit.
var ErrBodyTooLarge = errors.New("middleware: request body too large")

type ctxKeyRecord struct{}

// ContextWithRecord attaches a validated record to the context.
func ContextWithRecord(ctx context.Context, rec map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyRecord{}, rec)
}

// RecordFromContext retrieves the record stored by ContextWithRecord.
func RecordFromContext(ctx context.Context) (map[string]any, bool) {
	rec, ok := ctx.Value(ctxKeyRecord{}).(map[string]any)
	return rec, ok
}

// Check reads a JSON object from body (at most DefaultMaxBodyBytes) and runs
// it through v.
func Check(v *fieldpipe.Validator, body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(io.LimitReader(body, DefaultMaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", fieldpipe.ErrDecode, err)
	}
	if int64(len(data)) > DefaultMaxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return v.ValidateJSON(data)
}

// ErrorPayload shapes a Check error for JSON responses.
//   - field failures: {"field", "code", "message"}
//   - anything else: {"error"}
func ErrorPayload(err error) map[string]any {
	if ne, ok := fieldpipe.AsNamedError(err); ok {
		return map[string]any{"field": ne.Field, "code": ne.Code, "message": ne.Message}
	}
	return map[string]any{"error": err.Error()}
}

// StatusFor maps a Check error to an HTTP status.
func StatusFor(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// ValidateJSON is net/http middleware: it validates the request body with v,
// stores the record in the request context and calls next, or answers with
// an ErrorPayload.
func ValidateJSON(v *fieldpipe.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, err := Check(v, r.Body)
			if err != nil {
				writeJSON(w, StatusFor(err), ErrorPayload(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithRecord(r.Context(), rec)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
