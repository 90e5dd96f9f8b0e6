package apiv1

import (
	"fmt"

	"cvforge-backend/controllers"
	resumehandler "cvforge-backend/lib/resume"
	apimodels "cvforge-backend/models/api"
	resumeapimodels "cvforge-backend/models/api/resume"

	"github.com/gofiber/fiber/v2"
)

type resumeApiController struct {
	controllers.BaseAPIController
}

func InitResumeApiRouters(app *fiber.App) {
	controller := resumeApiController{}
	app.Route("resume", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.replace)
			idRoute.Patch("", controller.updateField)
			idRoute.Delete("", controller.delete)
			idRoute.Get("preview", controller.preview)
			idRoute.Get("raw", controller.raw)
			idRoute.Get("export", controller.exportHTML)
			idRoute.Get("export/pdf", controller.exportPDF)
			idRoute.Route("experience", func(expRoute fiber.Router) {
				expRoute.Post("", controller.addExperience)
				expRoute.Patch(":idx", controller.updateExperience)
				expRoute.Delete(":idx", controller.removeExperience)
			})
			idRoute.Route("education", func(eduRoute fiber.Router) {
				eduRoute.Post("", controller.addEducation)
				eduRoute.Patch(":idx", controller.updateEducation)
				eduRoute.Delete(":idx", controller.removeEducation)
			})
		})
	})
}

func (c *resumeApiController) sendResume(ctx *fiber.Ctx, rec resumeapimodels.Resume, err error, msg string) error {
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, msg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resumeapimodels.ResumeView{ID: c.GetID(ctx), Resume: rec}))
}

// @Summary New resume draft
// @Tags Resume
// @Description Starts with one blank experience row and one blank education row.
// @Success 201 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @router /api/v1/resume [post]
func (c *resumeApiController) create(ctx *fiber.Ctx) error {
	id, rec := resumehandler.Instance.Create()
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resumeapimodels.ResumeView{ID: id, Resume: rec}))
}

// @Summary Resume record
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id} [get]
func (c *resumeApiController) get(ctx *fiber.Ctx) error {
	rec, err := resumehandler.Instance.Get(c.GetID(ctx))
	return c.sendResume(ctx, rec, err, "failed to get resume")
}

// @Summary Replace resume record
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Param	body body	 resumeapimodels.Resume	true	"request body"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id} [put]
func (c *resumeApiController) replace(ctx *fiber.Ctx) error {
	var payload resumeapimodels.Resume
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := resumehandler.Instance.Replace(c.GetID(ctx), payload)
	return c.sendResume(ctx, rec, err, "failed to replace resume")
}

// @Summary Update resume field
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Param	body body	 resumeapimodels.FieldUpdate	true	"request body"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id} [patch]
func (c *resumeApiController) updateField(ctx *fiber.Ctx) error {
	var payload resumeapimodels.FieldUpdate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := resumehandler.Instance.UpdateField(c.GetID(ctx), payload.Field, payload.Value)
	return c.sendResume(ctx, rec, err, "failed to update resume")
}

// @Summary Discard resume draft
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id} [delete]
func (c *resumeApiController) delete(ctx *fiber.Ctx) error {
	if err := resumehandler.Instance.Delete(c.GetID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete resume")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Add experience row
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/experience [post]
func (c *resumeApiController) addExperience(ctx *fiber.Ctx) error {
	rec, err := resumehandler.Instance.AddExperience(c.GetID(ctx))
	return c.sendResume(ctx, rec, err, "failed to add experience")
}

// @Summary Edit experience row
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Param   idx         path    int     true    "row index"
// @Param	body body	 resumeapimodels.ExperienceUpdate	true	"request body"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/experience/{idx} [patch]
func (c *resumeApiController) updateExperience(ctx *fiber.Ctx) error {
	idx, err := c.GetIndex(ctx, "idx")
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload resumeapimodels.ExperienceUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := resumehandler.Instance.UpdateExperience(c.GetID(ctx), idx, payload.Field, payload.Value)
	return c.sendResume(ctx, rec, err, "failed to update experience")
}

// @Summary Remove experience row
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Param   idx         path    int     true    "row index"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/experience/{idx} [delete]
func (c *resumeApiController) removeExperience(ctx *fiber.Ctx) error {
	idx, err := c.GetIndex(ctx, "idx")
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := resumehandler.Instance.RemoveExperience(c.GetID(ctx), idx)
	return c.sendResume(ctx, rec, err, "failed to remove experience")
}

// @Summary Add education row
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/education [post]
func (c *resumeApiController) addEducation(ctx *fiber.Ctx) error {
	rec, err := resumehandler.Instance.AddEducation(c.GetID(ctx))
	return c.sendResume(ctx, rec, err, "failed to add education")
}

// @Summary Edit education row
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Param   idx         path    int     true    "row index"
// @Param	body body	 resumeapimodels.EducationUpdate	true	"request body"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/education/{idx} [patch]
func (c *resumeApiController) updateEducation(ctx *fiber.Ctx) error {
	idx, err := c.GetIndex(ctx, "idx")
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload resumeapimodels.EducationUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := resumehandler.Instance.UpdateEducation(c.GetID(ctx), idx, payload.Field, payload.Value)
	return c.sendResume(ctx, rec, err, "failed to update education")
}

// @Summary Remove education row
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Param   idx         path    int     true    "row index"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/education/{idx} [delete]
func (c *resumeApiController) removeEducation(ctx *fiber.Ctx) error {
	idx, err := c.GetIndex(ctx, "idx")
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := resumehandler.Instance.RemoveEducation(c.GetID(ctx), idx)
	return c.sendResume(ctx, rec, err, "failed to remove education")
}

// @Summary Live preview
// @Tags Resume
// @Param   id          path    string  true    "resume draft ID"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.PreviewView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/preview [get]
func (c *resumeApiController) preview(ctx *fiber.Ctx) error {
	text, err := resumehandler.Instance.Preview(c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to render preview")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resumeapimodels.PreviewView{ID: c.GetID(ctx), Text: text}))
}

// @Summary Raw record
// @Tags Resume
// @Description The bare record JSON, without the response envelope.
// @Param   id          path    string  true    "resume draft ID"
// @Success 200 {object} resumeapimodels.Resume
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/raw [get]
func (c *resumeApiController) raw(ctx *fiber.Ctx) error {
	rec, err := resumehandler.Instance.Get(c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get resume")
	}
	return ctx.Status(fiber.StatusOK).JSON(rec)
}

// @Summary Print-ready HTML
// @Tags Resume
// @Produce html
// @Param   id          path    string  true    "resume draft ID"
// @Success 200
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/export [get]
func (c *resumeApiController) exportHTML(ctx *fiber.Ctx) error {
	body, err := resumehandler.Instance.ExportHTML(c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export resume")
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary PDF export
// @Tags Resume
// @Produce application/pdf
// @Param   id          path    string  true    "resume draft ID"
// @Success 200
// @Failure 404 {object} apimodels.Response
// @router /api/v1/resume/{id}/export/pdf [get]
func (c *resumeApiController) exportPDF(ctx *fiber.Ctx) error {
	body, err := resumehandler.Instance.ExportPDF(c.GetID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export resume")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="resume-%s.pdf"`, c.GetID(ctx)))
	return ctx.Status(fiber.StatusOK).Send(body)
}
