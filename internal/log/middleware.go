package log

import (
	"net/http"

	"github.com/glensd/personalExpenseTracker/internal/middleware/trace"
)

// Middleware stores a request-scoped logger in the context, tagged with the
// HTTP component and the request id set by the trace middleware.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger.WithComponent(ComponentHTTP)
			if id := trace.GetRequestID(r.Context()); id != "" {
				l = l.With(FieldRequestID, id)
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), l)))
		})
	}
}
