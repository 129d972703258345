package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/airport-reservation/internal/model"
	"github.com/skylane/airport-reservation/internal/utils"
)

const testSecret = "unit-test-secret"

func protectedEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", mw...)
	g.GET("/probe", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	})
	return e
}

func TestJWTAuthMissingHeader(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))
	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))
	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("some-other-secret", 5, model.RoleCustomer, 15)
	require.NoError(t, err)

	e := protectedEcho(JWTAuth(testSecret))
	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenSetsContext(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 5, model.RoleCustomer, 15)
	require.NoError(t, err)

	e := protectedEcho(JWTAuth(testSecret))
	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":5`)
	assert.Contains(t, rec.Body.String(), `"role":"CUSTOMER"`)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 5, model.RoleCustomer, -1)
	require.NoError(t, err)

	e := protectedEcho(JWTAuth(testSecret))
	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleBlocksCustomerWrites(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 5, model.RoleCustomer, 15)
	require.NoError(t, err)

	e := protectedEcho(JWTAuth(testSecret), RequireRole(model.RoleAdmin))
	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAdmitsAdmin(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 9, model.RoleAdmin, 15)
	require.NoError(t, err)

	e := protectedEcho(JWTAuth(testSecret), RequireRole(model.RoleAdmin))
	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
