package coachhandler

import (
	"bytes"
	"strings"
	"time"

	xlsexport "cvforge-backend/lib/export/xls"
	"cvforge-backend/lib/metrics"
	sessionstore "cvforge-backend/lib/session-store"
	"cvforge-backend/lib/utils/delay"
	"cvforge-backend/lib/utils/random"
	coachapimodels "cvforge-backend/models/api/coach"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmptyMessage  = errors.New("message must not be empty")
	ErrUnknownSample = errors.New("unknown sample question")
)

// Notifier receives every message appended to a transcript.
type Notifier interface {
	Publish(sessionID string, msg coachapimodels.Message)
	Close(sessionID string)
}

type Provider interface {
	Create() coachapimodels.SessionView
	Get(id string) (coachapimodels.SessionView, error)
	SetRole(id, role string) (coachapimodels.SessionView, error)
	// Submit appends the user message now and the coach reply after the
	// configured delay.
	Submit(id, text string) (coachapimodels.Message, error)
	PracticeSample(id string, idx int) (coachapimodels.Message, error)
	ExportTranscript(id string) (*bytes.Buffer, error)
	Delete(id string) error
	Sweep() int
}

var Instance Provider

type Config struct {
	ReplyDelay  time.Duration
	DefaultRole string
	TTL         time.Duration
}

func NewHandler(cfg Config, scheduler delay.Scheduler, src random.Source, notifier Notifier, exporter xlsexport.Provider) {
	Instance = NewInstance(cfg, scheduler, src, notifier, exporter)
}

func NewInstance(cfg Config, scheduler delay.Scheduler, src random.Source, notifier Notifier, exporter xlsexport.Provider) Provider {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &impl{
		store:     sessionstore.New[state](cfg.TTL),
		cfg:       cfg,
		scheduler: scheduler,
		src:       src,
		notifier:  notifier,
		exporter:  exporter,
	}
}

type state struct {
	role     string
	messages []coachapimodels.Message
}

type impl struct {
	store     *sessionstore.Store[state]
	cfg       Config
	scheduler delay.Scheduler
	src       random.Source
	notifier  Notifier
	exporter  xlsexport.Provider
}

func (i *impl) Create() coachapimodels.SessionView {
	s := state{
		role:     i.cfg.DefaultRole,
		messages: []coachapimodels.Message{{From: coachapimodels.SenderBot, Text: Greeting}},
	}
	id := i.store.Create(s)
	return toView(id, s)
}

func (i *impl) Get(id string) (coachapimodels.SessionView, error) {
	s, err := i.store.Get(id)
	if err != nil {
		return coachapimodels.SessionView{}, err
	}
	return toView(id, s), nil
}

func (i *impl) SetRole(id, role string) (view coachapimodels.SessionView, err error) {
	err = i.store.Update(id, func(s *state) error {
		s.role = role
		view = toView(id, *s)
		return nil
	})
	return view, err
}

func (i *impl) Submit(id, text string) (coachapimodels.Message, error) {
	if strings.TrimSpace(text) == "" {
		return coachapimodels.Message{}, ErrEmptyMessage
	}
	userMsg := coachapimodels.Message{From: coachapimodels.SenderUser, Text: text}
	err := i.store.Update(id, func(s *state) error {
		i.appendMessage(id, s, userMsg)
		return nil
	})
	if err != nil {
		return coachapimodels.Message{}, err
	}

	reply, kind := Respond(text, i.src)
	metrics.ObserveCoachReply(kind)
	botMsg := coachapimodels.Message{From: coachapimodels.SenderBot, Text: reply}
	i.scheduler.After(i.cfg.ReplyDelay, func() {
		err := i.store.Update(id, func(s *state) error {
			i.appendMessage(id, s, botMsg)
			return nil
		})
		if err != nil {
			log.WithField("session_id", id).WithError(err).Debug("coach session gone before the reply")
		}
	})
	return userMsg, nil
}

func (i *impl) PracticeSample(id string, idx int) (coachapimodels.Message, error) {
	if idx < 0 || idx >= len(samples) {
		return coachapimodels.Message{}, errors.Wrapf(ErrUnknownSample, "index %d", idx)
	}
	return i.Submit(id, samples[idx].Question)
}

func (i *impl) ExportTranscript(id string) (*bytes.Buffer, error) {
	s, err := i.store.Get(id)
	if err != nil {
		return nil, err
	}
	buf, err := i.exporter.ExportTranscript(s.role, s.messages)
	if err != nil {
		log.WithField("session_id", id).WithError(err).Error("failed to export coach transcript")
		return nil, err
	}
	return buf, nil
}

func (i *impl) Delete(id string) error {
	if err := i.store.Delete(id); err != nil {
		return err
	}
	i.notifier.Close(id)
	return nil
}

func (i *impl) Sweep() int {
	removed := i.store.Sweep()
	for _, id := range removed {
		i.notifier.Close(id)
	}
	return len(removed)
}

// appendMessage runs under the session lock so the push order matches the
// transcript order.
func (i *impl) appendMessage(id string, s *state, msg coachapimodels.Message) {
	s.messages = append(s.messages, msg)
	i.notifier.Publish(id, msg)
}

func toView(id string, s state) coachapimodels.SessionView {
	return coachapimodels.SessionView{
		ID:       id,
		Role:     s.role,
		Messages: append([]coachapimodels.Message(nil), s.messages...),
	}
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, coachapimodels.Message) {}

func (nopNotifier) Close(string) {}
