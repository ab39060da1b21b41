package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/pkg/jwt"
)

const testSecret = "secreto-de-test-lo-bastante-largo"

// buildTestApp app mínima con una ruta protegida por auth y otra solo-admin.
func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", AuthMiddleware(testSecret))
	protected.Get("/perfil", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/panel", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "u-1", role, "inventory-test", 60)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/perfil", "Bearer "+tokenForRole(t, entity.RoleUser))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/perfil", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/perfil", "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenVacio(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/perfil", "Bearer ")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenAdulterado(t *testing.T) {
	app := buildTestApp()

	otherSecret, err := jwt.Generate("otro-secreto-distinto-al-del-server", "u-1", entity.RoleAdmin, "inventory-test", 60)
	require.NoError(t, err)

	resp := doRequest(t, app, "/perfil", "Bearer "+otherSecret)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_AdminPasa(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/admin/panel", "Bearer "+tokenForRole(t, entity.RoleAdmin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolInsuficiente(t *testing.T) {
	app := buildTestApp()

	for _, role := range []string{entity.RoleManager, entity.RoleUser} {
		resp := doRequest(t, app, "/admin/panel", "Bearer "+tokenForRole(t, role))
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "rol %s no debe entrar al panel", role)
	}
}
