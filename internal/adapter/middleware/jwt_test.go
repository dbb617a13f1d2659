package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userDomain "contract-approval/internal/domain/user"
	"contract-approval/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

func tokenFor(t *testing.T, issuer *user.TokenIssuer, role userDomain.Role) string {
	t.Helper()
	tok, err := issuer.Issue(&userDomain.User{ID: "u-1", Role: role})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

func TestRequireRoles(t *testing.T) {
	issuer := user.NewTokenIssuer("secret", time.Hour)
	foreign := user.NewTokenIssuer("other-secret", time.Hour)

	e := echo.New()
	e.GET("/audit/verify", func(c echo.Context) error {
		cl, ok := Claims(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, string(cl.Role))
	}, RequireRoles(issuer, userDomain.RoleAuditor, userDomain.RoleAdmin))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"foreign secret", "Bearer " + tokenFor(t, foreign, userDomain.RoleAdmin), http.StatusUnauthorized},
		{"wrong role", "Bearer " + tokenFor(t, issuer, userDomain.RoleProcurement), http.StatusForbidden},
		{"auditor", "Bearer " + tokenFor(t, issuer, userDomain.RoleAuditor), http.StatusOK},
		{"admin", "bearer " + tokenFor(t, issuer, userDomain.RoleAdmin), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/audit/verify", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (body=%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}
