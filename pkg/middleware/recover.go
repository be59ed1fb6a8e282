package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/modacart/catalog/pkg/logger"
	"github.com/modacart/catalog/pkg/reqid"
	"github.com/modacart/catalog/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace,
// and returns a 500 Internal Server Error to the client.
// Add this after reqid/metrics so it wraps all handlers.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				// Recovery wraps the request-logger middleware, so the
				// per-request logger is not in the context here; attach
				// the request id directly.
				logger.L.With("request_id", reqid.FromCtx(r.Context())).Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
