package wsclient

import (
	"strings"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Reader is the read side of a websocket connection.
type Reader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

// OnText handles an inbound text frame. A returned error is reported back
// to the client, the connection stays open.
type OnText func(text string) error

// OnError reports a failed inbound frame to the client.
type OnError func(err error)

func NewClient(sessionID string, c Reader, onText OnText, onError OnError) *WsClient {
	return &WsClient{
		conn:      c,
		sessionID: sessionID,
		onText:    onText,
		onError:   onError,
	}
}

type WsClient struct {
	conn      Reader
	sessionID string
	onText    OnText
	onError   OnError
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch reads frames until the connection closes.
func (c *WsClient) Dispatch() {
	logger := log.WithField("session_id", c.sessionID)
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("failed to read ws message")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		text := strings.TrimSpace(string(data))
		logger.WithField("ws_message", text).Debug("ws-msg")
		if err = c.onText(text); err != nil && c.onError != nil {
			c.onError(err)
		}
	}
}
