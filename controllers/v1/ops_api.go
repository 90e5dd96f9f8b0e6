package apiv1

import (
	apimodels "cvforge-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitOpsRouters mounts liveness and metrics on the root app.
func InitOpsRouters(app *fiber.App) {
	app.Get("/healthz", healthz)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// @Summary Liveness
// @Tags Ops
// @Success 200 {object} apimodels.Response
// @router /healthz [get]
func healthz(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("ok"))
}
