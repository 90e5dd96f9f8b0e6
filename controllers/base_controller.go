package controllers

import (
	"io"
	"mime/multipart"
	"strconv"

	capturehandler "cvforge-backend/lib/capture"
	coachhandler "cvforge-backend/lib/coach"
	resumehandler "cvforge-backend/lib/resume"
	sessionstore "cvforge-backend/lib/session-store"
	verificationhandler "cvforge-backend/lib/verification"
	apimodels "cvforge-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		c.GetLogger(ctx).WithError(err).Warn("failed to parse request body")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) string {
	return ctx.Params("id")
}

// GetIndex reads a non-negative integer path parameter.
func (c *BaseAPIController) GetIndex(ctx *fiber.Ctx, name string) (int, error) {
	idx, err := strconv.Atoi(ctx.Params(name))
	if err != nil || idx < 0 {
		return 0, errors.Errorf("%s must be a non-negative integer", name)
	}
	return idx, nil
}

// ReadFormFile returns the content of the multipart file field.
func (c *BaseAPIController) ReadFormFile(ctx *fiber.Ctx, field string) ([]byte, *multipart.FileHeader, error) {
	file, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "form field %q", field)
	}
	buffer, err := file.Open()
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("failed to open uploaded file")
		return nil, nil, err
	}
	defer buffer.Close()
	body, err := io.ReadAll(buffer)
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("failed to read uploaded file")
		return nil, nil, err
	}
	return body, file, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.WithField("path", ctx.Path())
	if id, ok := ctx.Locals("requestid").(string); ok {
		logger = logger.WithField("request_id", id)
	}
	if id := ctx.Params("id"); id != "" {
		logger = logger.WithField("session_id", id)
	}
	return logger
}

func (c *BaseAPIController) SendBadRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
}

// SendError answers with the status matching the domain error. Unknown
// errors are logged and answered with 500 and msg.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	status := statusOf(err)
	if status == fiber.StatusInternalServerError {
		logger.WithError(err).Error(msg)
		return ctx.Status(status).JSON(apimodels.NewError(msg))
	}
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{sessionstore.ErrSessionNotFound, fiber.StatusNotFound},
	{capturehandler.ErrNoImage, fiber.StatusNotFound},
	{capturehandler.ErrCameraInactive, fiber.StatusConflict},
	{capturehandler.ErrImageTooLarge, fiber.StatusRequestEntityTooLarge},
	{capturehandler.ErrNotImage, fiber.StatusUnsupportedMediaType},
	{capturehandler.ErrBadDataURL, fiber.StatusBadRequest},
	{resumehandler.ErrIndexOutOfRange, fiber.StatusBadRequest},
	{resumehandler.ErrUnknownField, fiber.StatusBadRequest},
	{verificationhandler.ErrNoFile, fiber.StatusBadRequest},
	{coachhandler.ErrEmptyMessage, fiber.StatusBadRequest},
	{coachhandler.ErrUnknownSample, fiber.StatusBadRequest},
}

func statusOf(err error) int {
	for _, item := range errorStatuses {
		if errors.Is(err, item.err) {
			return item.status
		}
	}
	return fiber.StatusInternalServerError
}
