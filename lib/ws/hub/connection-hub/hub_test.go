package connectionhub

import (
	"sync"
	"testing"
	"time"

	coachapimodels "cvforge-backend/models/api/coach"
	wsmodels "cvforge-backend/models/ws"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	sent   []wsmodels.ServerMessage
	closed bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v.(wsmodels.ServerMessage))
	return nil
}

func (c *fakeConn) WriteControl(int, []byte, time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) messages() []wsmodels.ServerMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]wsmodels.ServerMessage(nil), c.sent...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// releasedConn counts writes that arrive after the connection was handed back.
type releasedConn struct {
	mu       sync.Mutex
	released bool
	late     int
}

func (c *releasedConn) write() error {
	time.Sleep(100 * time.Microsecond)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		c.late++
	}
	return nil
}

func (c *releasedConn) WriteJSON(interface{}) error { return c.write() }

func (c *releasedConn) WriteControl(int, []byte, time.Time) error { return c.write() }

func (c *releasedConn) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released = true
}

func (c *releasedConn) lateWrites() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.late
}

func TestHubRelease(t *testing.T) {
	t.Run(`no writes after delete returns`, func(t *testing.T) {
		hub := NewInstance()
		conns := make([]*releasedConn, 0, 50)
		for n := 0; n < 50; n++ {
			conn := &releasedConn{}
			conns = append(conns, conn)
			hub.AddClient("s1", conn)
			for m := 0; m < 10; m++ {
				hub.Publish("s1", coachapimodels.Message{From: coachapimodels.SenderBot, Text: "tip"})
			}
			hub.DeleteClient("s1", conn)
			conn.release()
		}
		time.Sleep(20 * time.Millisecond)
		for _, conn := range conns {
			require.Zero(t, conn.lateWrites())
		}
	})

	t.Run(`replaced connection is drained by its own delete`, func(t *testing.T) {
		hub := NewInstance()
		oldConn, newConn := &releasedConn{}, &releasedConn{}
		hub.AddClient("s1", oldConn)
		hub.Publish("s1", coachapimodels.Message{From: coachapimodels.SenderBot, Text: "tip"})
		hub.AddClient("s1", newConn)
		hub.DeleteClient("s1", oldConn)
		oldConn.release()
		require.True(t, hub.IsConnected("s1"))

		hub.Close("s1")
		hub.DeleteClient("s1", newConn)
		newConn.release()
		time.Sleep(20 * time.Millisecond)
		require.Zero(t, oldConn.lateWrites())
		require.Zero(t, newConn.lateWrites())
	})
}

func TestHub(t *testing.T) {
	t.Run(`publish reaches the session connection in order`, func(t *testing.T) {
		hub := NewInstance()
		conn := &fakeConn{}
		hub.AddClient("s1", conn)
		require.True(t, hub.IsConnected("s1"))

		hub.Publish("s1", coachapimodels.Message{From: coachapimodels.SenderUser, Text: "hello"})
		hub.Publish("s1", coachapimodels.Message{From: coachapimodels.SenderBot, Text: "tip"})
		hub.Publish("other", coachapimodels.Message{From: coachapimodels.SenderBot, Text: "lost"})

		require.Eventually(t, func() bool { return len(conn.messages()) == 2 }, time.Second, 5*time.Millisecond)
		msgs := conn.messages()
		require.Equal(t, "user", msgs[0].From)
		require.Equal(t, "hello", msgs[0].Msg)
		require.Equal(t, wsmodels.CodeCoachMessage, msgs[1].Code)
		require.Equal(t, "tip", msgs[1].Msg)
	})

	t.Run(`newer connection replaces the old one`, func(t *testing.T) {
		hub := NewInstance()
		oldConn, newConn := &fakeConn{}, &fakeConn{}
		hub.AddClient("s1", oldConn)
		hub.AddClient("s1", newConn)
		require.Eventually(t, oldConn.isClosed, time.Second, 5*time.Millisecond)

		// the old handler exiting must not drop the new connection
		hub.DeleteClient("s1", oldConn)
		require.True(t, hub.IsConnected("s1"))

		hub.DeleteClient("s1", newConn)
		require.False(t, hub.IsConnected("s1"))
	})

	t.Run(`close sends a close frame`, func(t *testing.T) {
		hub := NewInstance()
		conn := &fakeConn{}
		hub.AddClient("s1", conn)
		hub.Close("s1")
		require.False(t, hub.IsConnected("s1"))
		require.Eventually(t, conn.isClosed, time.Second, 5*time.Millisecond)
	})
}
