package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apimodels "cvforge-backend/models/api"

	"github.com/gofiber/fiber/v2"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrNotify(t *testing.T) {
	got := make(chan errNotification, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n errNotification
		_ = json.NewDecoder(r.Body).Decode(&n)
		got <- n
	}))
	defer hook.Close()

	app := fiber.New()
	app.Use(ErrNotify(hook.URL))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/boom/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("failed to export resume"))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/boom/42", nil))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	select {
	case n := <-got:
		require.Equal(t, 500, n.Code)
		require.Equal(t, "/boom/:id", n.Path)
		require.Equal(t, "failed to export resume", n.Error)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not sent")
	}
	select {
	case n := <-got:
		t.Fatalf("unexpected notification %+v", n)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestErrNotifyReturnedErrors(t *testing.T) {
	got := make(chan errNotification, 4)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n errNotification
		_ = json.NewDecoder(r.Body).Decode(&n)
		got <- n
	}))
	defer hook.Close()

	app := fiber.New()
	app.Use(ErrNotify(hook.URL))
	app.Use(fiberRecover.New())
	app.Get("/fail", func(c *fiber.Ctx) error { return errors.New("store unreachable") })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("nil map") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	expect := func(path string, status int, notified bool) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.Nil(t, err)
		require.Equal(t, status, resp.StatusCode, path)
		if !notified {
			select {
			case n := <-got:
				t.Fatalf("unexpected notification %+v", n)
			case <-time.After(100 * time.Millisecond):
			}
			return
		}
		select {
		case n := <-got:
			require.Equal(t, status, n.Code)
			require.Equal(t, path, n.Path)
			require.NotEmpty(t, n.Error)
		case <-time.After(2 * time.Second):
			t.Fatalf("notification for %s not sent", path)
		}
	}

	expect("/fail", fiber.StatusInternalServerError, true)
	expect("/panic", fiber.StatusInternalServerError, true)
	expect("/missing", fiber.StatusNotFound, false)
}
