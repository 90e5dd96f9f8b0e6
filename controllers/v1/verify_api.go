package apiv1

import (
	"cvforge-backend/controllers"
	verificationhandler "cvforge-backend/lib/verification"
	apimodels "cvforge-backend/models/api"
	verifyapimodels "cvforge-backend/models/api/verify"

	"github.com/gofiber/fiber/v2"
)

type verifyApiController struct {
	controllers.BaseAPIController
}

func InitVerifyApiRouters(app *fiber.App) {
	controller := verifyApiController{}
	app.Route("verify", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Post("file", controller.submit)
		})
	})
}

// @Summary Open verification panel
// @Tags Verify
// @Success 201 {object} apimodels.Response{data=verifyapimodels.SessionView}
// @router /api/v1/verify [post]
func (c *verifyApiController) create(ctx *fiber.Ctx) error {
	id := verificationhandler.Instance.Create()
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(verifyapimodels.SessionView{ID: id}))
}

// @Summary Verification state
// @Tags Verify
// @Description report is null until the checks of the latest file finish
// @Param   id          path    string  true    "verification session ID"
// @Success 200 {object} apimodels.Response{data=verifyapimodels.SessionView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/verify/{id} [get]
func (c *verifyApiController) get(ctx *fiber.Ctx) error {
	view, err := verificationhandler.Instance.Get(c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get verification session")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Discard verification panel
// @Tags Verify
// @Param   id          path    string  true    "verification session ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/verify/{id} [delete]
func (c *verifyApiController) delete(ctx *fiber.Ctx) error {
	if err := verificationhandler.Instance.Delete(c.GetID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete verification session")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Choose document
// @Tags Verify
// @Description Replaces the current file, clears the report and schedules the checks.
// @Accept mpfd
// @Param   id          path    string  true    "verification session ID"
// @Param   file    formData    file    true    "document"
// @Success 202 {object} apimodels.Response{data=verifyapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/verify/{id}/file [post]
func (c *verifyApiController) submit(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return c.SendBadRequest(ctx, verificationhandler.ErrNoFile)
	}
	meta := verificationhandler.FileMeta{
		Name:        file.Filename,
		Size:        file.Size,
		ContentType: file.Header.Get(fiber.HeaderContentType),
	}
	view, err := verificationhandler.Instance.Submit(c.GetID(ctx), meta)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit document")
	}
	return ctx.Status(fiber.StatusAccepted).JSON(apimodels.NewResponse(view))
}
