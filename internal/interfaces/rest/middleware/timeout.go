package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds each request two ways: the context deadline lets
// in-flight carrier and database calls abort, and the http.TimeoutHandler
// guarantees the client gets an answer even if a handler ignores its
// context.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	const body = `{"success":false,"error":{"code":"TIMEOUT","message":"request timed out"}}`

	return func(next http.Handler) http.Handler {
		bounded := http.TimeoutHandler(next, limit, body)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			bounded.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
