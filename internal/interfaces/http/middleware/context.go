package middleware

import (
	"context"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
)

// Request headers understood by the API.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserID    = "X-User-ID"
)

// maxUserIDLength bounds the X-User-ID header.
const maxUserIDLength = 128

// RequestContext copies the request id and the X-User-ID header into the
// request context so that the service layer and its logs can see them. It must
// run after chi's RequestID middleware.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rid := chimw.GetReqID(ctx)
		if rid == "" {
			rid = r.Header.Get(HeaderRequestID)
		}
		if rid != "" {
			ctx = logging.ContextWithRequestID(ctx, rid)
			w.Header().Set(HeaderRequestID, rid)
		}

		if uid := strings.TrimSpace(r.Header.Get(HeaderUserID)); uid != "" && len(uid) <= maxUserIDLength {
			ctx = logging.ContextWithUserID(ctx, uid)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContextGetUserID returns the user id set by RequestContext, or "".
func ContextGetUserID(ctx context.Context) string {
	return logging.UserIDFromContext(ctx)
}

// ContextGetRequestID returns the request id set by RequestContext, or "".
func ContextGetRequestID(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}

//Personal.AI order the ending
