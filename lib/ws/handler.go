package ws

import (
	"time"

	coachhandler "cvforge-backend/lib/coach"
	sessionstore "cvforge-backend/lib/session-store"
	wsclient "cvforge-backend/lib/ws/client"
	connectionhub "cvforge-backend/lib/ws/hub/connection-hub"
	apimodels "cvforge-backend/models/api"
	wsmodels "cvforge-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

func InitWs(app *fiber.App) {
	app.Get("coach/:id", requireCoachSession, websocket.New(coachHandler))
}

// requireCoachSession answers before the upgrade so unknown sessions get a
// plain 404.
func requireCoachSession(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	_, err := coachhandler.Instance.Get(ctx.Params("id"))
	if errors.Is(err, sessionstore.ErrSessionNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Next()
}

// @Summary Coach live transcript
// @Tags Websocket
// @Description Pushes every message appended to the coach transcript. Inbound text frames are submitted as answers.
// @Param   id          path    string  true    "coach session ID"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 404
// @Failure 426
// @router /api/v1/ws/coach/{id} [get]
func coachHandler(c *websocket.Conn) {
	sessionID := c.Params("id")
	connectionhub.Instance.AddClient(sessionID, c)
	defer connectionhub.Instance.DeleteClient(sessionID, c)

	client := wsclient.NewClient(sessionID, c,
		func(text string) error {
			_, err := coachhandler.Instance.Submit(sessionID, text)
			return err
		},
		func(err error) {
			connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
				ToSessionID: sessionID,
				Time:        time.Now().Format("02.01.2006 15:04:05"),
				Code:        wsmodels.CodeError,
				Msg:         err.Error(),
			})
		},
	)
	client.Dispatch()
}
