package apiv1

import (
	"fmt"
	"time"

	"cvforge-backend/controllers"
	coachhandler "cvforge-backend/lib/coach"
	apimodels "cvforge-backend/models/api"
	coachapimodels "cvforge-backend/models/api/coach"

	"github.com/gofiber/fiber/v2"
)

type coachApiController struct {
	controllers.BaseAPIController
}

func InitCoachApiRouters(app *fiber.App) {
	controller := coachApiController{}
	app.Route("coach", func(router fiber.Router) {
		router.Get("samples", controller.samples)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Put("role", controller.setRole)
			idRoute.Post("messages", controller.submit)
			idRoute.Post("samples/:idx", controller.practiceSample)
			idRoute.Get("transcript.xlsx", controller.exportTranscript)
		})
	})
}

// @Summary Sample questions
// @Tags Coach
// @Success 200 {object} apimodels.Response{data=[]coachapimodels.SampleQuestion}
// @router /api/v1/coach/samples [get]
func (c *coachApiController) samples(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(coachhandler.Samples()))
}

// @Summary Open coach session
// @Tags Coach
// @Description The transcript starts with the coach greeting.
// @Success 201 {object} apimodels.Response{data=coachapimodels.SessionView}
// @router /api/v1/coach [post]
func (c *coachApiController) create(ctx *fiber.Ctx) error {
	view := coachhandler.Instance.Create()
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(view))
}

// @Summary Coach transcript
// @Tags Coach
// @Param   id          path    string  true    "coach session ID"
// @Success 200 {object} apimodels.Response{data=coachapimodels.SessionView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/coach/{id} [get]
func (c *coachApiController) get(ctx *fiber.Ctx) error {
	view, err := coachhandler.Instance.Get(c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get coach session")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Discard coach session
// @Tags Coach
// @Param   id          path    string  true    "coach session ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/coach/{id} [delete]
func (c *coachApiController) delete(ctx *fiber.Ctx) error {
	if err := coachhandler.Instance.Delete(c.GetID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete coach session")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Set target role
// @Tags Coach
// @Param   id          path    string  true    "coach session ID"
// @Param	body body	 coachapimodels.RoleRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=coachapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/coach/{id}/role [put]
func (c *coachApiController) setRole(ctx *fiber.Ctx) error {
	var payload coachapimodels.RoleRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	view, err := coachhandler.Instance.SetRole(c.GetID(ctx), payload.Role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to set role")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Submit answer
// @Tags Coach
// @Description Appends the message now and the coach reply after a short delay.
// @Param   id          path    string  true    "coach session ID"
// @Param	body body	 coachapimodels.SubmitRequest	true	"request body"
// @Success 202 {object} apimodels.Response{data=coachapimodels.Message}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/coach/{id}/messages [post]
func (c *coachApiController) submit(ctx *fiber.Ctx) error {
	var payload coachapimodels.SubmitRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	msg, err := coachhandler.Instance.Submit(c.GetID(ctx), payload.Text)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit message")
	}
	return ctx.Status(fiber.StatusAccepted).JSON(apimodels.NewResponse(msg))
}

// @Summary Practice sample question
// @Tags Coach
// @Param   id          path    string  true    "coach session ID"
// @Param   idx         path    int     true    "sample index"
// @Success 202 {object} apimodels.Response{data=coachapimodels.Message}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/coach/{id}/samples/{idx} [post]
func (c *coachApiController) practiceSample(ctx *fiber.Ctx) error {
	idx, err := c.GetIndex(ctx, "idx")
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	msg, err := coachhandler.Instance.PracticeSample(c.GetID(ctx), idx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit sample question")
	}
	return ctx.Status(fiber.StatusAccepted).JSON(apimodels.NewResponse(msg))
}

// @Summary Transcript export
// @Tags Coach
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   id          path    string  true    "coach session ID"
// @Success 200
// @Failure 404 {object} apimodels.Response
// @router /api/v1/coach/{id}/transcript.xlsx [get]
func (c *coachApiController) exportTranscript(ctx *fiber.Ctx) error {
	data, err := coachhandler.Instance.ExportTranscript(c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export transcript")
	}
	fileName := fmt.Sprintf("coach-transcript-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
