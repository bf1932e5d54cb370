package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vkotelnikov/HVS-VisitService/internal/api/handlers"
)

type contextKey string

const (
	visitorIDKey contextKey = "visitorID"
	staffIDKey   contextKey = "staffID"

	// HeaderVisitorID identifies the visitor on whose behalf the request
	// is made. Upstream gateway authenticates and sets it.
	HeaderVisitorID = "X-Visitor-ID"
	// HeaderStaffID identifies hospital staff for administrative routes.
	HeaderStaffID = "X-Staff-ID"
)

// Auth requires a valid X-Visitor-ID or X-Staff-ID header and puts the
// identity into the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		identified := false

		if raw := r.Header.Get(HeaderVisitorID); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				handlers.RespondUnauthorized(w, "invalid visitor ID header")
				return
			}
			ctx = context.WithValue(ctx, visitorIDKey, id)
			identified = true
		}

		if raw := r.Header.Get(HeaderStaffID); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				handlers.RespondUnauthorized(w, "invalid staff ID header")
				return
			}
			ctx = context.WithValue(ctx, staffIDKey, id)
			identified = true
		}

		if !identified {
			handlers.RespondUnauthorized(w, "missing identity header")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffOnly requires the staff identity. Use after Auth on admin routes.
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetStaffID(r.Context()); !ok {
			handlers.RespondForbidden(w, "staff access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetVisitorID returns the visitor identity set by Auth.
func GetVisitorID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(visitorIDKey).(int64)
	return id, ok
}

// GetStaffID returns the staff identity set by Auth.
func GetStaffID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey).(int64)
	return id, ok
}
