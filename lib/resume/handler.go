package resumehandler

import (
	"time"

	htmlexport "cvforge-backend/lib/export/html"
	pdfexport "cvforge-backend/lib/export/pdf"
	"cvforge-backend/lib/metrics"
	sessionstore "cvforge-backend/lib/session-store"
	resumeapimodels "cvforge-backend/models/api/resume"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create() (id string, rec resumeapimodels.Resume)
	Get(id string) (resumeapimodels.Resume, error)
	Replace(id string, rec resumeapimodels.Resume) (resumeapimodels.Resume, error)
	UpdateField(id, field, value string) (resumeapimodels.Resume, error)
	AddExperience(id string) (resumeapimodels.Resume, error)
	UpdateExperience(id string, idx int, field, value string) (resumeapimodels.Resume, error)
	RemoveExperience(id string, idx int) (resumeapimodels.Resume, error)
	AddEducation(id string) (resumeapimodels.Resume, error)
	UpdateEducation(id string, idx int, field, value string) (resumeapimodels.Resume, error)
	RemoveEducation(id string, idx int) (resumeapimodels.Resume, error)
	Preview(id string) (string, error)
	ExportHTML(id string) ([]byte, error)
	ExportPDF(id string) ([]byte, error)
	Delete(id string) error
	Sweep() int
}

var Instance Provider

func NewHandler(ttl time.Duration, printDelayMs int) {
	Instance = NewInstance(ttl, printDelayMs)
}

func NewInstance(ttl time.Duration, printDelayMs int) Provider {
	return &impl{
		store:        sessionstore.New[resumeapimodels.Resume](ttl),
		printDelayMs: printDelayMs,
	}
}

type impl struct {
	store        *sessionstore.Store[resumeapimodels.Resume]
	printDelayMs int
}

func (i *impl) Create() (string, resumeapimodels.Resume) {
	rec := NewResume()
	id := i.store.Create(rec)
	log.WithField("session_id", id).Debug("resume draft created")
	return id, rec
}

func (i *impl) Get(id string) (resumeapimodels.Resume, error) {
	rec, err := i.store.Get(id)
	return rec.Normalize(), err
}

func (i *impl) Replace(id string, rec resumeapimodels.Resume) (resumeapimodels.Resume, error) {
	return i.apply(id, func(resumeapimodels.Resume) (resumeapimodels.Resume, error) {
		return rec.Normalize(), nil
	})
}

func (i *impl) UpdateField(id, field, value string) (resumeapimodels.Resume, error) {
	return i.apply(id, func(r resumeapimodels.Resume) (resumeapimodels.Resume, error) {
		return WithField(r, field, value)
	})
}

func (i *impl) AddExperience(id string) (resumeapimodels.Resume, error) {
	return i.apply(id, func(r resumeapimodels.Resume) (resumeapimodels.Resume, error) {
		return AddExperience(r), nil
	})
}

func (i *impl) UpdateExperience(id string, idx int, field, value string) (resumeapimodels.Resume, error) {
	return i.apply(id, func(r resumeapimodels.Resume) (resumeapimodels.Resume, error) {
		return UpdateExperience(r, idx, field, value)
	})
}

func (i *impl) RemoveExperience(id string, idx int) (resumeapimodels.Resume, error) {
	return i.apply(id, func(r resumeapimodels.Resume) (resumeapimodels.Resume, error) {
		return RemoveExperience(r, idx)
	})
}

func (i *impl) AddEducation(id string) (resumeapimodels.Resume, error) {
	return i.apply(id, func(r resumeapimodels.Resume) (resumeapimodels.Resume, error) {
		return AddEducation(r), nil
	})
}

func (i *impl) UpdateEducation(id string, idx int, field, value string) (resumeapimodels.Resume, error) {
	return i.apply(id, func(r resumeapimodels.Resume) (resumeapimodels.Resume, error) {
		return UpdateEducation(r, idx, field, value)
	})
}

func (i *impl) RemoveEducation(id string, idx int) (resumeapimodels.Resume, error) {
	return i.apply(id, func(r resumeapimodels.Resume) (resumeapimodels.Resume, error) {
		return RemoveEducation(r, idx)
	})
}

func (i *impl) Preview(id string) (string, error) {
	rec, err := i.store.Get(id)
	if err != nil {
		return "", err
	}
	return Preview(rec), nil
}

func (i *impl) ExportHTML(id string) ([]byte, error) {
	rec, err := i.store.Get(id)
	if err != nil {
		return nil, err
	}
	body, err := htmlexport.RenderResume(rec, SkillList(rec.Skills), i.printDelayMs)
	if err != nil {
		log.WithField("session_id", id).WithError(err).Error("failed to render resume html")
		return nil, err
	}
	metrics.ObserveResumeExport("html")
	return body, nil
}

func (i *impl) ExportPDF(id string) ([]byte, error) {
	rec, err := i.store.Get(id)
	if err != nil {
		return nil, err
	}
	body, err := pdfexport.GenerateResume(rec, SkillList(rec.Skills))
	if err != nil {
		log.WithField("session_id", id).WithError(err).Error("failed to render resume pdf")
		return nil, err
	}
	metrics.ObserveResumeExport("pdf")
	return body, nil
}

func (i *impl) Delete(id string) error {
	return i.store.Delete(id)
}

func (i *impl) Sweep() int {
	return len(i.store.Sweep())
}

// apply stores the result of a pure update; the draft is untouched on error.
func (i *impl) apply(id string, fn func(resumeapimodels.Resume) (resumeapimodels.Resume, error)) (resumeapimodels.Resume, error) {
	var out resumeapimodels.Resume
	err := i.store.Update(id, func(state *resumeapimodels.Resume) error {
		next, err := fn(*state)
		if err != nil {
			return err
		}
		*state = next
		out = next
		return nil
	})
	return out.Normalize(), err
}
