package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resto-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protegida", AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":       GetUserID(c),
			"restaurant_id": GetRestaurantID(c),
			"role":          GetRole(c),
		})
	})
	return app
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest(nethttp.MethodGet, "/protegida", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	app := newProtectedApp()

	for _, header := range []string{"token-sin-esquema", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(nethttp.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest(nethttp.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := newProtectedApp()
	token, err := jwt.Generate("otro-secreto", "u1", "r1", "admin", "resto-api", 60)
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidTokenPopulatesLocals(t *testing.T) {
	app := newProtectedApp()
	token, err := jwt.Generate(testSecret, "u1", "r1", "mesero", "resto-api", 60)
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, "r1", body["restaurant_id"])
	assert.Equal(t, "mesero", body["role"])
}
