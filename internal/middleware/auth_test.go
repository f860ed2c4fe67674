package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"partner-portal/internal/model"
	"partner-portal/pkg/config"
	"partner-portal/pkg/jwtutil"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "middleware-test-key"

func init() {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: testSigningKey, ExpirationDays: 7})
}

func runGuarded(t *testing.T, authHeader string, guards ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	for i := len(guards) - 1; i >= 0; i-- {
		handler = guards[i](handler)
	}
	require.NoError(t, handler(c))
	return rec, c
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec, _ := runGuarded(t, "", RequireAuth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is missing", errorBody(t, rec))
}

func TestRequireAuthBadFormat(t *testing.T) {
	rec, _ := runGuarded(t, "Basic dXNlcjpwYXNz", RequireAuth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token format", errorBody(t, rec))
}

func TestRequireAuthInvalidToken(t *testing.T) {
	rec, _ := runGuarded(t, "Bearer garbage", RequireAuth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is invalid", errorBody(t, rec))
}

func TestRequireAuthExpiredToken(t *testing.T) {
	now := time.Now()
	claims := jwtutil.UserClaims{
		UserID:   1,
		UserType: model.SenderPartner,
		Email:    "jane@acme.example",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	rec, _ := runGuarded(t, "Bearer "+token, RequireAuth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has expired", errorBody(t, rec))
}

func TestRequireAuthSetsPrincipal(t *testing.T) {
	token, err := jwtutil.GenerateToken(42, model.SenderPartner, "jane@acme.example")
	require.NoError(t, err)

	rec, c := runGuarded(t, "Bearer "+token, RequireAuth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), c.Get(UserIDKey))
	assert.Equal(t, model.SenderPartner, c.Get(UserTypeKey))
	assert.Equal(t, "jane@acme.example", c.Get(EmailKey))
}

func TestRequireAdminRejectsPartnerToken(t *testing.T) {
	token, err := jwtutil.GenerateToken(42, model.SenderPartner, "jane@acme.example")
	require.NoError(t, err)

	rec, _ := runGuarded(t, "Bearer "+token, RequireAuth, RequireAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin privileges required", errorBody(t, rec))
}

func TestRequireAdminAllowsAdminToken(t *testing.T) {
	token, err := jwtutil.GenerateToken(1, model.SenderAdmin, "admin@bztradewave.au")
	require.NoError(t, err)

	rec, _ := runGuarded(t, "Bearer "+token, RequireAuth, RequireAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePartnerRejectsAdminToken(t *testing.T) {
	token, err := jwtutil.GenerateToken(1, model.SenderAdmin, "admin@bztradewave.au")
	require.NoError(t, err)

	rec, _ := runGuarded(t, "Bearer "+token, RequireAuth, RequirePartner)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Partner access required", errorBody(t, rec))
}
