package connectionhub

import (
	"sync"
	"time"

	coachapimodels "cvforge-backend/models/api/coach"
	wsmodels "cvforge-backend/models/ws"
)

const timeLayout = "02.01.2006 15:04:05"

// Provider keeps at most one live connection per coach session.
type Provider interface {
	AddClient(sessionID string, conn Conn)
	// DeleteClient releases conn. When it returns nothing writes to conn
	// anymore, so the caller may hand the connection back.
	DeleteClient(sessionID string, conn Conn)
	SendMessage(msg wsmodels.ServerMessage)
	SendClose(sessionID string)
	IsConnected(sessionID string) bool

	Publish(sessionID string, msg coachapimodels.Message)
	Close(sessionID string)
}

var Instance Provider

func Init() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return &impl{
		clients: map[string]*clientSession{},
		senders: map[Conn]*clientSession{},
	}
}

type impl struct {
	mu      sync.Mutex
	clients map[string]*clientSession // map[sessionID]
	// every sender not yet released by DeleteClient, replaced ones included
	senders map[Conn]*clientSession
}

func (i *impl) AddClient(sessionID string, conn Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if old, ok := i.clients[sessionID]; ok {
		old.stop()
	}
	sess := newSession(sessionID, conn)
	i.clients[sessionID] = sess
	i.senders[conn] = sess
}

func (i *impl) DeleteClient(sessionID string, conn Conn) {
	i.mu.Lock()
	sess, ok := i.senders[conn]
	if ok {
		delete(i.senders, conn)
		if cur, found := i.clients[sessionID]; found && cur == sess {
			delete(i.clients, sessionID)
		}
	}
	i.mu.Unlock()
	if ok {
		sess.shutdown()
	}
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.Lock()
	sess, ok := i.clients[msg.ToSessionID]
	i.mu.Unlock()
	if ok {
		sess.enqueue(msg)
	}
}

func (i *impl) SendClose(sessionID string) {
	i.mu.Lock()
	sess, ok := i.clients[sessionID]
	if ok {
		delete(i.clients, sessionID)
	}
	i.mu.Unlock()
	if ok {
		sess.shutdown()
	}
}

func (i *impl) IsConnected(sessionID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.clients[sessionID]
	return ok
}

func (i *impl) Publish(sessionID string, msg coachapimodels.Message) {
	i.SendMessage(wsmodels.ServerMessage{
		ToSessionID: sessionID,
		Time:        time.Now().Format(timeLayout),
		Code:        wsmodels.CodeCoachMessage,
		From:        string(msg.From),
		Msg:         msg.Text,
	})
}

func (i *impl) Close(sessionID string) {
	i.SendClose(sessionID)
}
