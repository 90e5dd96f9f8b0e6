package connectionhub

import (
	"context"
	"time"

	wsmodels "cvforge-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn is the write side of a websocket connection.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

const sendBuffer = 16

type clientSession struct {
	sessionID string
	conn      Conn

	// Outbound messages, buffered. Dropped when the client falls behind.
	sendCh chan wsmodels.ServerMessage
	ctx    context.Context
	stop   func()
	// closed once the sender has written its last frame
	done chan struct{}
}

func newSession(sessionID string, conn Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		sessionID: sessionID,
		conn:      conn,
		sendCh:    make(chan wsmodels.ServerMessage, sendBuffer),
		ctx:       ctx,
		stop:      cancelFn,
		done:      make(chan struct{}),
	}
	go sess.startSend()
	return sess
}

func (s *clientSession) startSend() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.conn.WriteJSON(msg); err != nil {
				log.WithField("session_id", s.sessionID).WithError(err).Error("failed to send ws message")
			}
		}
	}
}

func (s *clientSession) enqueue(msg wsmodels.ServerMessage) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.sendCh <- msg:
		return true
	default:
		log.WithField("session_id", s.sessionID).Warn("ws send buffer full, message dropped")
		return false
	}
}

// shutdown stops the sender and waits until it no longer touches conn.
func (s *clientSession) shutdown() {
	s.stop()
	<-s.done
}

func (s *clientSession) close() {
	err := s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithField("session_id", s.sessionID).WithError(err).Debug("ws close frame not sent")
	}
}
