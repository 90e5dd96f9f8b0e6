package apiv1

import (
	"strings"

	"cvforge-backend/controllers"
	capturehandler "cvforge-backend/lib/capture"
	apimodels "cvforge-backend/models/api"
	captureapimodels "cvforge-backend/models/api/capture"

	"github.com/gofiber/fiber/v2"
)

type captureApiController struct {
	controllers.BaseAPIController
}

func InitCaptureApiRouters(app *fiber.App) {
	controller := captureApiController{}
	app.Route("capture", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Post("upload", controller.upload)
			idRoute.Get("image", controller.image)
			idRoute.Route("camera", func(cameraRoute fiber.Router) {
				cameraRoute.Post("start", controller.startCamera)
				cameraRoute.Post("deny", controller.denyCamera)
				cameraRoute.Post("frame", controller.frame)
			})
		})
	})
}

// @Summary Open capture panel
// @Tags Capture
// @Success 201 {object} apimodels.Response{data=captureapimodels.SessionView}
// @router /api/v1/capture [post]
func (c *captureApiController) create(ctx *fiber.Ctx) error {
	view := capturehandler.Instance.Create()
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(view))
}

// @Summary Capture panel state
// @Tags Capture
// @Param   id          path    string  true    "capture session ID"
// @Success 200 {object} apimodels.Response{data=captureapimodels.SessionView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/capture/{id} [get]
func (c *captureApiController) get(ctx *fiber.Ctx) error {
	view, err := capturehandler.Instance.Get(c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get capture session")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Discard capture panel
// @Tags Capture
// @Param   id          path    string  true    "capture session ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/capture/{id} [delete]
func (c *captureApiController) delete(ctx *fiber.Ctx) error {
	if err := capturehandler.Instance.Delete(ctx.UserContext(), c.GetID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete capture session")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Camera requested
// @Tags Capture
// @Param   id          path    string  true    "capture session ID"
// @Success 200 {object} apimodels.Response{data=captureapimodels.SessionView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/capture/{id}/camera/start [post]
func (c *captureApiController) startCamera(ctx *fiber.Ctx) error {
	view, err := capturehandler.Instance.StartCamera(c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to start camera")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Camera denied or missing
// @Tags Capture
// @Description Rolls the panel back to idle and returns the alert to show.
// @Param   id          path    string  true    "capture session ID"
// @Param	body body	 captureapimodels.DenyRequest	false	"request body"
// @Success 200 {object} apimodels.Response{data=captureapimodels.SessionView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/capture/{id}/camera/deny [post]
func (c *captureApiController) denyCamera(ctx *fiber.Ctx) error {
	var payload captureapimodels.DenyRequest
	if len(ctx.Body()) != 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return c.SendBadRequest(ctx, err)
		}
	}
	view, err := capturehandler.Instance.DenyCamera(c.GetID(ctx), payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to deny camera")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Capture still frame
// @Tags Capture
// @Description Accepts a canvas data URL as JSON or a multipart "frame" file. Stops the camera.
// @Accept json,mpfd
// @Param   id          path    string  true    "capture session ID"
// @Param	body body	 captureapimodels.FrameRequest	false	"request body"
// @Param   frame   formData    file    false   "captured frame"
// @Success 200 {object} apimodels.Response{data=captureapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 415 {object} apimodels.Response
// @router /api/v1/capture/{id}/camera/frame [post]
func (c *captureApiController) frame(ctx *fiber.Ctx) error {
	var data []byte
	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		body, _, err := c.ReadFormFile(ctx, "frame")
		if err != nil {
			return c.SendBadRequest(ctx, err)
		}
		data = body
	} else {
		var payload captureapimodels.FrameRequest
		if err := c.BodyParser(ctx, &payload); err != nil {
			return c.SendBadRequest(ctx, err)
		}
		if err := payload.Validate(); err != nil {
			return c.SendBadRequest(ctx, err)
		}
		decoded, err := capturehandler.DecodeDataURL(payload.DataURL)
		if err != nil {
			return c.SendBadRequest(ctx, err)
		}
		data = decoded
	}
	view, err := capturehandler.Instance.CaptureFrame(ctx.UserContext(), c.GetID(ctx), data)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to store captured frame")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Upload image
// @Tags Capture
// @Accept mpfd
// @Param   id          path    string  true    "capture session ID"
// @Param   file    formData    file    true    "image file"
// @Success 200 {object} apimodels.Response{data=captureapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 413 {object} apimodels.Response
// @Failure 415 {object} apimodels.Response
// @router /api/v1/capture/{id}/upload [post]
func (c *captureApiController) upload(ctx *fiber.Ctx) error {
	body, _, err := c.ReadFormFile(ctx, "file")
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	view, err := capturehandler.Instance.Upload(ctx.UserContext(), c.GetID(ctx), body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to store uploaded image")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Image preview
// @Tags Capture
// @Produce image/png,image/jpeg,image/gif,image/webp
// @Param   id          path    string  true    "capture session ID"
// @Success 200
// @Failure 404 {object} apimodels.Response
// @router /api/v1/capture/{id}/image [get]
func (c *captureApiController) image(ctx *fiber.Ctx) error {
	data, contentType, err := capturehandler.Instance.Image(ctx.UserContext(), c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load image")
	}
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	ctx.Set(fiber.HeaderContentSecurityPolicy, "default-src 'none'")
	return ctx.Status(fiber.StatusOK).Send(data)
}
