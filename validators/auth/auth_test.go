package authValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginApp() *fiber.App {
	app := fiber.New()
	app.Post("/login", Login(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestLoginValidatorAccepts(t *testing.T) {
	app := loginApp()
	sig := "0x" + strings.Repeat("ab", 65)

	body := `{"walletAddress":"0x8ba1f109551bD432803012645Ac136ddd64DBA72","userType":"student","name":"Alice","email":"alice@example.com","signature":"` + sig + `"}`
	assert.Equal(t, fiber.StatusOK, postLogin(t, app, body))

	// Email is optional.
	body = `{"walletAddress":"0x8ba1f109551bD432803012645Ac136ddd64DBA72","userType":"VERIFIER","name":"Bob","signature":"` + sig + `"}`
	assert.Equal(t, fiber.StatusOK, postLogin(t, app, body))
}

func TestLoginValidatorRejects(t *testing.T) {
	app := loginApp()
	sig := "0x" + strings.Repeat("ab", 65)

	cases := []struct {
		name string
		body string
	}{
		{"bad wallet", `{"walletAddress":"not-an-address","userType":"STUDENT","name":"Alice","signature":"` + sig + `"}`},
		{"bad user type", `{"walletAddress":"0x8ba1f109551bD432803012645Ac136ddd64DBA72","userType":"ADMIN","name":"Alice","signature":"` + sig + `"}`},
		{"short name", `{"walletAddress":"0x8ba1f109551bD432803012645Ac136ddd64DBA72","userType":"STUDENT","name":"A","signature":"` + sig + `"}`},
		{"bad email", `{"walletAddress":"0x8ba1f109551bD432803012645Ac136ddd64DBA72","userType":"STUDENT","name":"Alice","email":"nope","signature":"` + sig + `"}`},
		{"short signature", `{"walletAddress":"0x8ba1f109551bD432803012645Ac136ddd64DBA72","userType":"STUDENT","name":"Alice","signature":"0xabcd"}`},
		{"missing signature", `{"walletAddress":"0x8ba1f109551bD432803012645Ac136ddd64DBA72","userType":"STUDENT","name":"Alice"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, fiber.StatusUnprocessableEntity, postLogin(t, app, tc.body))
		})
	}
}
