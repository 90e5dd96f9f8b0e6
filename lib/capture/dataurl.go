package capturehandler

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

var ErrBadDataURL = errors.New("malformed data URL")

// DecodeDataURL returns the payload of a "data:[<type>][;base64],<data>" URL,
// the format canvas.toDataURL produces.
func DecodeDataURL(raw string) ([]byte, error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrBadDataURL
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, errors.Wrap(ErrBadDataURL, err.Error())
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, errors.Wrap(ErrBadDataURL, err.Error())
	}
	return []byte(data), nil
}
