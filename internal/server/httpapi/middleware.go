package httpapi

import (
	"context"
	"net/http"

	"postboard/internal/logging"
)

type ctxKey int

const tokenKey ctxKey = iota

// tokenFromContext returns the raw Authorization header value stored by
// requireToken. The empty string means the middleware did not run.
func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// requireToken rejects requests without an Authorization header. The token
// itself is verified by the service layer, which knows the resource owner.
func requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			writeMsg(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenKey, token)))
	})
}

// logRequests emits one line per handled request.
func logRequests(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info(r.Context(), "request", "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
