package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityEcho(t *testing.T, wantVisitor, wantStaff int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantVisitor > 0 {
			id, ok := GetVisitorID(r.Context())
			require.True(t, ok)
			assert.Equal(t, wantVisitor, id)
		}
		if wantStaff > 0 {
			id, ok := GetStaffID(r.Context())
			require.True(t, ok)
			assert.Equal(t, wantStaff, id)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth_VisitorHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderVisitorID, "7")
	rec := httptest.NewRecorder()

	Auth(identityEcho(t, 7, 0)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_StaffHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderStaffID, "3")
	rec := httptest.NewRecorder()

	Auth(identityEcho(t, 0, 3)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_MissingIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Auth(identityEcho(t, 0, 0)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, raw := range []string{"abc", "-5", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderVisitorID, raw)
		rec := httptest.NewRecorder()

		Auth(identityEcho(t, 0, 0)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", raw)
	}
}

func TestStaffOnly_RejectsVisitor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	req.Header.Set(HeaderVisitorID, "7")
	rec := httptest.NewRecorder()

	Auth(StaffOnly(identityEcho(t, 0, 0))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStaffOnly_AllowsStaff(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	req.Header.Set(HeaderVisitorID, "7")
	req.Header.Set(HeaderStaffID, "3")
	rec := httptest.NewRecorder()

	Auth(StaffOnly(identityEcho(t, 7, 3))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
