package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	apimodels "cvforge-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type errNotification struct {
	Code   int    `json:"code"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Error  string `json:"error"`
}

var notifyClient = &http.Client{Timeout: 5 * time.Second}

// ErrNotify posts every 5xx answer to the webhook at addr. Errors returned by
// later handlers are rendered here with the app error handler so their final
// status is known. Mount it before the recover middleware to see panics.
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		statusCode := c.Response().StatusCode()
		if statusCode < fiber.StatusInternalServerError {
			return nil
		}

		body := c.Response().Body()
		var data apimodels.Response
		if unmErr := json.Unmarshal(body, &data); unmErr != nil {
			log.WithError(unmErr).Debug("non-json error response")
		}
		msg := data.Message
		if msg == "" {
			msg = string(body)
		}
		if msg == "" && err != nil {
			msg = err.Error()
		}
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}
		payload, mErr := json.Marshal(errNotification{Code: statusCode, Method: c.Method(), Path: path, Error: msg})
		if mErr != nil {
			log.WithError(mErr).Warn("failed to encode error notification")
			return nil
		}
		go func() {
			resp, reqErr := notifyClient.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(payload))
			if reqErr != nil {
				log.WithError(reqErr).Warn("failed to send error notification")
				return
			}
			resp.Body.Close()
		}()
		return nil
	}
}
