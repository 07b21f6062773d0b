package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func doAuthRequest(token string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	_ = h(c)
	return rec, c
}

func TestAuthJWT_ValidTokenSetsContext(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "550e8400-e29b-41d4-a716-446655440000",
		"role": "customer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, c := doAuthRequest(token, middleware.AuthJWT(cfg))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "customer", c.Get(middleware.CtxUserRoleKey))
}

func TestAuthJWT_WrongSecretRejected(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	token := signToken(t, "other_secret", jwt.MapClaims{
		"sub":  "550e8400-e29b-41d4-a716-446655440000",
		"role": "customer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, _ := doAuthRequest(token, middleware.AuthJWT(cfg))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredTokenRejected(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "550e8400-e29b-41d4-a716-446655440000",
		"role": "customer",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	rec, _ := doAuthRequest(token, middleware.AuthJWT(cfg))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingHeaderRejected(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	rec, _ := doAuthRequest("", middleware.AuthJWT(cfg))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard_CustomerForbidden(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "550e8400-e29b-41d4-a716-446655440000",
		"role": "customer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, _ := doAuthRequest(token, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_AdminAllowed(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "550e8400-e29b-41d4-a716-446655440000",
		"role": string(model.RoleAdmin),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, _ := doAuthRequest(token, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())

	assert.Equal(t, http.StatusOK, rec.Code)
}
