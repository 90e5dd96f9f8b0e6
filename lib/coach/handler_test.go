package coachhandler

import (
	"sync"
	"testing"
	"time"

	xlsexport "cvforge-backend/lib/export/xls"
	sessionstore "cvforge-backend/lib/session-store"
	"cvforge-backend/lib/utils/delay"
	"cvforge-backend/lib/utils/random"
	coachapimodels "cvforge-backend/models/api/coach"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type recordingNotifier struct {
	mu        sync.Mutex
	published []coachapimodels.Message
	closed    []string
}

func (n *recordingNotifier) Publish(_ string, msg coachapimodels.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, msg)
}

func (n *recordingNotifier) Close(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, id)
}

func newTestInstance(s delay.Scheduler, notifier Notifier) Provider {
	xlsexport.NewHandler()
	cfg := Config{ReplyDelay: 500 * time.Millisecond, DefaultRole: "Software Engineer", TTL: time.Minute}
	return NewInstance(cfg, s, random.NewSequence(0), notifier, xlsexport.Instance)
}

func TestHandler(t *testing.T) {
	t.Run(`new session starts with the greeting`, func(t *testing.T) {
		h := newTestInstance(delay.Immediate{}, nil)
		view := h.Create()
		require.Equal(t, "Software Engineer", view.Role)
		require.Len(t, view.Messages, 1)
		require.Equal(t, coachapimodels.SenderBot, view.Messages[0].From)
		require.Equal(t, Greeting, view.Messages[0].Text)
	})

	t.Run(`each submission adds exactly two messages`, func(t *testing.T) {
		m := &delay.Manual{}
		h := newTestInstance(m, nil)
		id := h.Create().ID

		msg, err := h.Submit(id, "Tell me about yourself.")
		require.Nil(t, err)
		require.Equal(t, coachapimodels.SenderUser, msg.From)

		view, _ := h.Get(id)
		require.Len(t, view.Messages, 2)
		require.Equal(t, 1, m.Len())

		m.Flush()
		view, _ = h.Get(id)
		require.Len(t, view.Messages, 3)
		require.Equal(t, coachapimodels.SenderBot, view.Messages[2].From)
		require.Contains(t, view.Messages[2].Text, "Start with a 2-3 sentence summary")
	})

	t.Run(`blank input is rejected`, func(t *testing.T) {
		m := &delay.Manual{}
		h := newTestInstance(m, nil)
		id := h.Create().ID
		_, err := h.Submit(id, "   ")
		require.True(t, errors.Is(err, ErrEmptyMessage))
		view, _ := h.Get(id)
		require.Len(t, view.Messages, 1)
		require.Equal(t, 0, m.Len())
	})

	t.Run(`overlapping submissions keep both replies`, func(t *testing.T) {
		m := &delay.Manual{}
		h := newTestInstance(m, nil)
		id := h.Create().ID
		_, err := h.Submit(id, "Tell me about yourself.")
		require.Nil(t, err)
		_, err = h.Submit(id, "Why do you want this role?")
		require.Nil(t, err)
		m.Flush()

		view, _ := h.Get(id)
		require.Len(t, view.Messages, 5)
		require.Equal(t, coachapimodels.SenderUser, view.Messages[1].From)
		require.Equal(t, coachapimodels.SenderUser, view.Messages[2].From)
		require.Contains(t, view.Messages[3].Text, "Start with")
		require.Contains(t, view.Messages[4].Text, "company/role alignment")
	})

	t.Run(`sample question submits its text`, func(t *testing.T) {
		h := newTestInstance(delay.Immediate{}, nil)
		id := h.Create().ID
		msg, err := h.PracticeSample(id, 1)
		require.Nil(t, err)
		require.Equal(t, "Why do you want this role?", msg.Text)

		_, err = h.PracticeSample(id, 4)
		require.True(t, errors.Is(err, ErrUnknownSample))
	})

	t.Run(`role does not change replies`, func(t *testing.T) {
		h := newTestInstance(delay.Immediate{}, nil)
		id := h.Create().ID
		view, err := h.SetRole(id, "Product Manager")
		require.Nil(t, err)
		require.Equal(t, "Product Manager", view.Role)
		_, err = h.Submit(id, "Tell me about yourself.")
		require.Nil(t, err)
		view, _ = h.Get(id)
		require.Contains(t, view.Messages[2].Text, "frontend engineer")
	})

	t.Run(`notifier sees messages in transcript order`, func(t *testing.T) {
		n := &recordingNotifier{}
		h := newTestInstance(delay.Immediate{}, n)
		id := h.Create().ID
		_, err := h.Submit(id, "hello")
		require.Nil(t, err)
		require.Len(t, n.published, 2)
		require.Equal(t, coachapimodels.SenderUser, n.published[0].From)
		require.Equal(t, coachapimodels.SenderBot, n.published[1].From)

		require.Nil(t, h.Delete(id))
		require.Equal(t, []string{id}, n.closed)
	})

	t.Run(`reply after delete is dropped`, func(t *testing.T) {
		m := &delay.Manual{}
		h := newTestInstance(m, nil)
		id := h.Create().ID
		_, err := h.Submit(id, "hello")
		require.Nil(t, err)
		require.Nil(t, h.Delete(id))
		m.Flush()
		_, err = h.Get(id)
		require.True(t, errors.Is(err, sessionstore.ErrSessionNotFound))
	})

	t.Run(`transcript export`, func(t *testing.T) {
		h := newTestInstance(delay.Immediate{}, nil)
		id := h.Create().ID
		_, err := h.Submit(id, "hello")
		require.Nil(t, err)

		buf, err := h.ExportTranscript(id)
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()
		rows, err := f.GetRows("Transcript")
		require.Nil(t, err)
		// role line, header, three messages
		require.Len(t, rows, 5)
	})
}
