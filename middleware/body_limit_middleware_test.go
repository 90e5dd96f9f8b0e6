package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(10))
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("small"))
	resp, err := app.Test(req)
	require.Nil(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(strings.Repeat("x", 11)))
	resp, err = app.Test(req)
	require.Nil(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}
