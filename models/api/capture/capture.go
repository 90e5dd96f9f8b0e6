package captureapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type State string

const (
	StateIdle         State = "idle"
	StateCameraActive State = "camera_active"
)

type Source string

const (
	SourceCamera Source = "camera"
	SourceUpload Source = "upload"
)

type SessionView struct {
	ID          string `json:"id"`
	State       State  `json:"state"`
	HasImage    bool   `json:"has_image"`
	Source      Source `json:"source,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int    `json:"size,omitempty"`
	Alert       string `json:"alert,omitempty"` // user facing alert after a camera failure
}

type DenyRequest struct {
	Reason string `json:"reason"` // client side error name, e.g. NotAllowedError
}

type FrameRequest struct {
	DataURL string `json:"data_url"` // canvas.toDataURL output
}

func (r FrameRequest) Validate() error {
	if !strings.HasPrefix(r.DataURL, "data:") {
		return errors.New("data_url must be a data URL")
	}
	return nil
}
