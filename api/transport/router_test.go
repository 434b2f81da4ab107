package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alex-pricope/nomination-board/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProtected(t *testing.T) (*gin.Engine, *auth.TokenIssuer) {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	r := NewRouter(gin.TestMode)
	r.GET("/protected", AdminAuthMiddleware(issuer), func(c *gin.Context) {
		c.String(http.StatusOK, SessionFrom(c).Username)
	})
	return r, issuer
}

func TestAdminAuthMiddleware(t *testing.T) {
	r, issuer := setupProtected(t)
	token, _, err := issuer.Issue("adm1", "admin")
	require.NoError(t, err)

	cases := []struct {
		name    string
		headers map[string]string
		code    int
	}{
		{"Happy path - bearer", map[string]string{"Authorization": "Bearer " + token}, http.StatusOK},
		{"Happy path - x-admin-token", map[string]string{"x-admin-token": token}, http.StatusOK},
		{"Happy path - bare token in Authorization", map[string]string{"Authorization": token}, http.StatusOK},
		{"Unhappy path - no token", nil, http.StatusUnauthorized},
		{"Unhappy path - bad token", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"Unhappy path - wrong scheme", map[string]string{"Authorization": "Basic " + token}, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			res := httptest.NewRecorder()
			r.ServeHTTP(res, req)

			assert.Equal(t, tc.code, res.Code)
			if tc.code == http.StatusOK {
				assert.Equal(t, "admin", res.Body.String())
			}
		})
	}
}

func TestCORSAndNoRoute(t *testing.T) {
	r := NewRouter(gin.TestMode)

	req := httptest.NewRequest(http.MethodOptions, "/api/persons", nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNoContent, res.Code)
	assert.Contains(t, res.Header().Get("Access-Control-Allow-Methods"), "DELETE")

	req = httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	res = httptest.NewRecorder()
	r.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, res.Body.String(), "PAGE_NOT_FOUND")
}
