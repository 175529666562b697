package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/fdonboard/backend/internal/logger"
)

// RequestLogger tags the request context with chi's request id so that
// logger.FromContext carries it. It must run after middleware.RequestID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logger.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
