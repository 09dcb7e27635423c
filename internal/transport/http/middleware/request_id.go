package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/jobhive/auth-service/internal/pkg/context"
)

const requestIDHeader = "X-Request-Id"

// RequestID accepts an inbound X-Request-Id or mints one, stores it in
// the context and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := appctx.WithRequestID(r.Context(), id)
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
