package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	requestIDKey contextKey = "requestID"
	tokenKey     contextKey = "storeToken"
)

// requestMiddleware tags each request with an id, logs it, and lifts a bearer
// token out of the Authorization header into the request context.
func requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		log.Info("incoming request", "method", r.Method, "url", r.URL.String(), "requestID", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			ctx = context.WithValue(ctx, tokenKey, strings.TrimPrefix(auth, "Bearer "))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bodyLimitMiddleware caps the request body; oversized bodies surface as a
// *http.MaxBytesError when the handler reads them.
func bodyLimitMiddleware(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromContext is a helper to safely retrieve the bearer token from the request context.
func tokenFromContext(r *http.Request) string {
	token, ok := r.Context().Value(tokenKey).(string)
	if !ok {
		return ""
	}
	return token
}
