package middleware

import (
	"lpg-marketplace/internal/config"
	"lpg-marketplace/internal/model"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuth = config.Auth{JWTSecret: "secret", Issuer: "lpg-marketplace", TokenTTL: time.Hour}

func runAuth(t *testing.T, header string, next echo.HandlerFunc) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	return AuthMiddleware(testAuth)(next)(c)
}

func TestAuthMiddlewareSetsActor(t *testing.T) {
	token, err := NewToken(testAuth, "admin-1", RoleAdmin, "Back Office")
	require.NoError(t, err)

	var actor model.Actor
	var userID string
	err = runAuth(t, "Bearer "+token, func(c echo.Context) error {
		actor = ActorFrom(c)
		userID = UserIDFrom(c)
		return RequireAdmin()(func(echo.Context) error { return nil })(c)
	})
	require.NoError(t, err)

	assert.Equal(t, model.AdminActor("admin-1", "Back Office"), actor)
	assert.Equal(t, "admin-1", userID)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	next := func(echo.Context) error { return nil }

	expired := testAuth
	expired.TokenTTL = -time.Minute
	expiredToken, err := NewToken(expired, "user-1", RoleUser, "Budi")
	require.NoError(t, err)

	otherIssuer := testAuth
	otherIssuer.Issuer = "someone-else"
	foreignToken, err := NewToken(otherIssuer, "user-1", RoleUser, "Budi")
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic dXNlcjpwYXNz",
		"garbage":        "Bearer nope",
		"expired":        "Bearer " + expiredToken,
		"wrong issuer":   "Bearer " + foreignToken,
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, runAuth(t, header, next), model.ErrUnauthorized)
		})
	}
}

func TestRequireAdminRejectsUsers(t *testing.T) {
	token, err := NewToken(testAuth, "user-1", RoleUser, "Budi")
	require.NoError(t, err)

	err = runAuth(t, "Bearer "+token, func(c echo.Context) error {
		return RequireAdmin()(func(echo.Context) error { return nil })(c)
	})
	assert.ErrorIs(t, err, model.ErrForbidden)
}
