package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

const (
	TenantIDKey    contextKey = "tenantID"
	TenantIDHeader string     = "X-Tenant-ID"
)

// Tenant resolves the calling tenant from the X-Tenant-ID header and puts
// it on the request context. Requests without a usable tenant never reach
// the handlers; every query below this point is tenant-scoped.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(TenantIDHeader)

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, map[string]interface{}{
				"error":   ErrorCodeTenantRequired,
				"message": ErrorMessageTenantRequired,
			})
			return
		}

		ctx := context.WithValue(r.Context(), TenantIDKey, tenantID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID returns the tenant set by Tenant, or 0 when the middleware
// did not run.
func GetTenantID(ctx context.Context) int64 {
	if tenantID, ok := ctx.Value(TenantIDKey).(int64); ok {
		return tenantID
	}
	return 0
}
