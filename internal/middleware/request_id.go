package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type reqIDKey struct{}

func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(reqIDKey{}); v != nil {
		if s, ok := v.(string); ok { return s }
	}
	return ""
}

// RequestID tags every request with an id, echoed in the X-Request-Id
// header and carried in the context for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), reqIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
