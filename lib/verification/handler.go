package verificationhandler

import (
	"strings"
	"time"

	"cvforge-backend/lib/metrics"
	sessionstore "cvforge-backend/lib/session-store"
	"cvforge-backend/lib/utils/delay"
	"cvforge-backend/lib/utils/random"
	verifyapimodels "cvforge-backend/models/api/verify"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrNoFile = errors.New("no file chosen")

type Provider interface {
	Create() string
	Get(id string) (verifyapimodels.SessionView, error)
	// Submit replaces the current file and report; the new report shows up
	// after the configured delay.
	Submit(id string, meta FileMeta) (verifyapimodels.SessionView, error)
	Delete(id string) error
	Sweep() int
}

var Instance Provider

type Config struct {
	Delay     time.Duration
	MaxFileMB int
	TTL       time.Duration
}

func NewHandler(cfg Config, scheduler delay.Scheduler, src random.Source) {
	Instance = NewInstance(cfg, scheduler, src)
}

func NewInstance(cfg Config, scheduler delay.Scheduler, src random.Source) Provider {
	return &impl{
		store:     sessionstore.New[state](cfg.TTL),
		cfg:       cfg,
		scheduler: scheduler,
		src:       src,
	}
}

type state struct {
	fileName   string
	report     *verifyapimodels.Report
	generation uint64
	pending    bool
}

type impl struct {
	store     *sessionstore.Store[state]
	cfg       Config
	scheduler delay.Scheduler
	src       random.Source
}

func (i *impl) Create() string {
	return i.store.Create(state{})
}

func (i *impl) Get(id string) (verifyapimodels.SessionView, error) {
	s, err := i.store.Get(id)
	if err != nil {
		return verifyapimodels.SessionView{}, err
	}
	return toView(id, s), nil
}

func (i *impl) Submit(id string, meta FileMeta) (view verifyapimodels.SessionView, err error) {
	if meta.Name == "" && meta.Size == 0 {
		return view, ErrNoFile
	}
	meta.ContentType = normalizeContentType(meta.ContentType)
	var gen uint64
	err = i.store.Update(id, func(s *state) error {
		s.generation++
		gen = s.generation
		s.fileName = meta.Name
		s.report = nil
		s.pending = true
		view = toView(id, *s)
		return nil
	})
	if err != nil {
		return view, err
	}
	logger := log.WithField("session_id", id).WithField("file_name", meta.Name)
	logger.Debug("document verification scheduled")
	i.scheduler.After(i.cfg.Delay, func() {
		i.finish(id, gen, meta)
	})
	return view, nil
}

// finish stores the report unless a newer file was chosen in the meantime.
func (i *impl) finish(id string, gen uint64, meta FileMeta) {
	logger := log.WithField("session_id", id).WithField("file_name", meta.Name)
	err := i.store.Update(id, func(s *state) error {
		if s.generation != gen {
			logger.Debug("stale verification result dropped")
			return nil
		}
		report := Evaluate(meta, i.cfg.MaxFileMB, i.src)
		s.report = &report
		s.pending = false
		metrics.ObserveVerification(string(report.Verdict))
		logger.WithField("verdict", report.Verdict).Info("document verification finished")
		return nil
	})
	if err != nil {
		logger.WithError(err).Debug("verification session gone before checks finished")
	}
}

func (i *impl) Delete(id string) error {
	return i.store.Delete(id)
}

func (i *impl) Sweep() int {
	return len(i.store.Sweep())
}

func toView(id string, s state) verifyapimodels.SessionView {
	view := verifyapimodels.SessionView{
		ID:       id,
		FileName: s.fileName,
		Pending:  s.pending,
	}
	if s.report != nil {
		report := *s.report
		report.Checks = append([]verifyapimodels.Check(nil), s.report.Checks...)
		view.Report = &report
	}
	return view
}

// normalizeContentType maps the multipart fallback type to "unknown", the
// way a browser leaves File.type empty for unrecognized files.
func normalizeContentType(ct string) string {
	ct = strings.TrimSpace(ct)
	if strings.HasPrefix(ct, "application/octet-stream") {
		return ""
	}
	return ct
}
