package middleware

import (
	"net/http/httptest"
	"testing"

	"educhain/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"walletAddress": c.Locals("walletAddress"),
			"userType":      c.Locals("userType"),
			"sessionId":     c.Locals("sessionId"),
		})
	})
	return app
}

func TestGenerateJWTClaims(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	signed, err := GenerateJWT("0xABCdef0123456789abcdef0123456789ABCDEF01", "STUDENT", "Alice", "sess-1")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", claims["walletAddress"])
	assert.Equal(t, "STUDENT", claims["userType"])
	assert.Equal(t, "Alice", claims["name"])
	assert.Equal(t, "sess-1", claims["jti"])
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := protectedApp()

	signed, err := GenerateJWT("0xabc", "VERIFIER", "Bob", "sess-2")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejections(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := protectedApp()

	wrongKeyToken := func() string {
		config.AppConfig.JWTKey = "other-secret"
		signed, _ := GenerateJWT("0xabc", "STUDENT", "Eve", "sess-3")
		config.AppConfig.JWTKey = "test-secret"
		return signed
	}()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "Token abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + wrongKeyToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
