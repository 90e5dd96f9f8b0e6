package capturehandler

import (
	"context"
	"time"

	"cvforge-backend/lib/capture/store"
	"cvforge-backend/lib/metrics"
	sessionstore "cvforge-backend/lib/session-store"
	captureapimodels "cvforge-backend/models/api/capture"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const CameraDeniedAlert = "Camera access denied or not supported."

var (
	ErrCameraInactive = errors.New("camera is not active")
	ErrNotImage       = errors.New("file is not an image")
	ErrImageTooLarge  = errors.New("image is too large")
	ErrNoImage        = errors.New("no image captured yet")
)

type Provider interface {
	Create() captureapimodels.SessionView
	Get(id string) (captureapimodels.SessionView, error)
	StartCamera(id string) (captureapimodels.SessionView, error)
	// DenyCamera rolls the session back to idle with the user facing alert.
	DenyCamera(id, reason string) (captureapimodels.SessionView, error)
	// CaptureFrame stores a still from the active camera and stops it.
	CaptureFrame(ctx context.Context, id string, data []byte) (captureapimodels.SessionView, error)
	Upload(ctx context.Context, id string, data []byte) (captureapimodels.SessionView, error)
	Image(ctx context.Context, id string) ([]byte, string, error)
	Delete(ctx context.Context, id string) error
	Sweep(ctx context.Context) int
}

var Instance Provider

// Only raster formats are kept. SVG is an image type too but carries script
// and is served back from the API origin.
var rasterTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

type Config struct {
	MaxImageMB int
	TTL        time.Duration
}

func NewHandler(cfg Config, images store.ImageStore) {
	Instance = NewInstance(cfg, images)
}

func NewInstance(cfg Config, images store.ImageStore) Provider {
	return &impl{
		store:  sessionstore.New[state](cfg.TTL),
		images: images,
		cfg:    cfg,
	}
}

type state struct {
	state       captureapimodels.State
	hasImage    bool
	source      captureapimodels.Source
	contentType string
	size        int
	alert       string
}

type impl struct {
	store  *sessionstore.Store[state]
	images store.ImageStore
	cfg    Config
}

func (i *impl) Create() captureapimodels.SessionView {
	s := state{state: captureapimodels.StateIdle}
	id := i.store.Create(s)
	return toView(id, s)
}

func (i *impl) Get(id string) (captureapimodels.SessionView, error) {
	s, err := i.store.Get(id)
	if err != nil {
		return captureapimodels.SessionView{}, err
	}
	return toView(id, s), nil
}

func (i *impl) StartCamera(id string) (view captureapimodels.SessionView, err error) {
	err = i.store.Update(id, func(s *state) error {
		s.state = captureapimodels.StateCameraActive
		s.alert = ""
		view = toView(id, *s)
		return nil
	})
	return view, err
}

func (i *impl) DenyCamera(id, reason string) (view captureapimodels.SessionView, err error) {
	err = i.store.Update(id, func(s *state) error {
		s.state = captureapimodels.StateIdle
		s.alert = CameraDeniedAlert
		view = toView(id, *s)
		return nil
	})
	if err == nil {
		log.WithField("session_id", id).WithField("reason", reason).Info("camera access denied")
	}
	return view, err
}

func (i *impl) CaptureFrame(ctx context.Context, id string, data []byte) (captureapimodels.SessionView, error) {
	return i.storeImage(ctx, id, data, captureapimodels.SourceCamera)
}

func (i *impl) Upload(ctx context.Context, id string, data []byte) (captureapimodels.SessionView, error) {
	return i.storeImage(ctx, id, data, captureapimodels.SourceUpload)
}

func (i *impl) storeImage(ctx context.Context, id string, data []byte, source captureapimodels.Source) (view captureapimodels.SessionView, err error) {
	if i.cfg.MaxImageMB > 0 && len(data) > i.cfg.MaxImageMB*1024*1024 {
		return view, errors.Wrapf(ErrImageTooLarge, "limit %dMB", i.cfg.MaxImageMB)
	}
	contentType := mimetype.Detect(data).String()
	if !rasterTypes[contentType] {
		return view, errors.Wrapf(ErrNotImage, "detected %s", contentType)
	}
	err = i.store.Update(id, func(s *state) error {
		if source == captureapimodels.SourceCamera && s.state != captureapimodels.StateCameraActive {
			return ErrCameraInactive
		}
		if err := i.images.Put(ctx, id, data, contentType); err != nil {
			return err
		}
		s.state = captureapimodels.StateIdle
		s.hasImage = true
		s.source = source
		s.contentType = contentType
		s.size = len(data)
		s.alert = ""
		view = toView(id, *s)
		return nil
	})
	if err != nil {
		return view, err
	}
	metrics.ObserveCapture(string(source))
	log.
		WithField("session_id", id).
		WithField("source", source).
		WithField("content_type", contentType).
		Debug("image stored")
	return view, nil
}

func (i *impl) Image(ctx context.Context, id string) ([]byte, string, error) {
	s, err := i.store.Get(id)
	if err != nil {
		return nil, "", err
	}
	if !s.hasImage {
		return nil, "", ErrNoImage
	}
	data, contentType, err := i.images.Get(ctx, id)
	if errors.Is(err, store.ErrImageNotFound) {
		return nil, "", ErrNoImage
	}
	return data, contentType, err
}

func (i *impl) Delete(ctx context.Context, id string) error {
	if err := i.store.Delete(id); err != nil {
		return err
	}
	i.removeImage(ctx, id)
	return nil
}

func (i *impl) Sweep(ctx context.Context) int {
	removed := i.store.Sweep()
	for _, id := range removed {
		i.removeImage(ctx, id)
	}
	return len(removed)
}

func (i *impl) removeImage(ctx context.Context, id string) {
	if err := i.images.Remove(ctx, id); err != nil {
		log.WithField("session_id", id).WithError(err).Warn("failed to remove captured image")
	}
}

func toView(id string, s state) captureapimodels.SessionView {
	return captureapimodels.SessionView{
		ID:          id,
		State:       s.state,
		HasImage:    s.hasImage,
		Source:      s.source,
		ContentType: s.contentType,
		Size:        s.size,
		Alert:       s.alert,
	}
}
