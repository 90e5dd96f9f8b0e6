package capturehandler

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
	"time"

	"cvforge-backend/lib/capture/store"
	sessionstore "cvforge-backend/lib/session-store"
	captureapimodels "cvforge-backend/models/api/capture"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const svgWithScript = `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(document.domain)</script></svg>`

func pngBytes(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.Nil(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 4, 3))))
	return buf.Bytes()
}

func newTestInstance() (Provider, *store.Memory) {
	images := store.NewMemory()
	return NewInstance(Config{MaxImageMB: 1, TTL: time.Minute}, images), images
}

func TestCamera(t *testing.T) {
	ctx := context.Background()

	t.Run(`start then capture stores the still and stops the camera`, func(t *testing.T) {
		h, images := newTestInstance()
		id := h.Create().ID

		view, err := h.StartCamera(id)
		require.Nil(t, err)
		require.Equal(t, captureapimodels.StateCameraActive, view.State)

		view, err = h.CaptureFrame(ctx, id, pngBytes(t))
		require.Nil(t, err)
		require.Equal(t, captureapimodels.StateIdle, view.State)
		require.True(t, view.HasImage)
		require.Equal(t, captureapimodels.SourceCamera, view.Source)
		require.Equal(t, "image/png", view.ContentType)
		require.Equal(t, 1, images.Len())

		data, ct, err := h.Image(ctx, id)
		require.Nil(t, err)
		require.Equal(t, "image/png", ct)
		require.Equal(t, pngBytes(t), data)
	})

	t.Run(`capture needs an active camera`, func(t *testing.T) {
		h, images := newTestInstance()
		id := h.Create().ID
		_, err := h.CaptureFrame(ctx, id, pngBytes(t))
		require.True(t, errors.Is(err, ErrCameraInactive))
		require.Equal(t, 0, images.Len())
	})

	t.Run(`denial alerts and rolls back to idle`, func(t *testing.T) {
		h, _ := newTestInstance()
		id := h.Create().ID
		_, err := h.StartCamera(id)
		require.Nil(t, err)

		view, err := h.DenyCamera(id, "NotAllowedError")
		require.Nil(t, err)
		require.Equal(t, captureapimodels.StateIdle, view.State)
		require.Equal(t, CameraDeniedAlert, view.Alert)
		require.False(t, view.HasImage)

		// a new attempt clears the alert
		view, err = h.StartCamera(id)
		require.Nil(t, err)
		require.Empty(t, view.Alert)
	})
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run(`upload replaces the captured image`, func(t *testing.T) {
		h, images := newTestInstance()
		id := h.Create().ID
		_, _ = h.StartCamera(id)
		_, err := h.CaptureFrame(ctx, id, pngBytes(t))
		require.Nil(t, err)

		gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
		view, err := h.Upload(ctx, id, gif)
		require.Nil(t, err)
		require.Equal(t, captureapimodels.SourceUpload, view.Source)
		require.Equal(t, "image/gif", view.ContentType)
		require.Equal(t, len(gif), view.Size)
		require.Equal(t, 1, images.Len())
	})

	t.Run(`upload while the camera runs stops it`, func(t *testing.T) {
		h, _ := newTestInstance()
		id := h.Create().ID
		_, _ = h.StartCamera(id)
		view, err := h.Upload(ctx, id, pngBytes(t))
		require.Nil(t, err)
		require.Equal(t, captureapimodels.StateIdle, view.State)
	})

	t.Run(`non images are rejected`, func(t *testing.T) {
		h, _ := newTestInstance()
		id := h.Create().ID
		_, err := h.Upload(ctx, id, []byte("%PDF-1.4 not an image"))
		require.True(t, errors.Is(err, ErrNotImage))

		view, _ := h.Get(id)
		require.False(t, view.HasImage)
		_, _, err = h.Image(ctx, id)
		require.True(t, errors.Is(err, ErrNoImage))
	})

	t.Run(`svg is rejected`, func(t *testing.T) {
		h, _ := newTestInstance()
		id := h.Create().ID
		_, err := h.Upload(ctx, id, []byte(svgWithScript))
		require.True(t, errors.Is(err, ErrNotImage))
		_, _, err = h.Image(ctx, id)
		require.True(t, errors.Is(err, ErrNoImage))
	})

	t.Run(`size limit`, func(t *testing.T) {
		h, _ := newTestInstance()
		id := h.Create().ID
		big := append(pngBytes(t), make([]byte, 1024*1024)...)
		_, err := h.Upload(ctx, id, big)
		require.True(t, errors.Is(err, ErrImageTooLarge))
	})

	t.Run(`delete drops the image`, func(t *testing.T) {
		h, images := newTestInstance()
		id := h.Create().ID
		_, err := h.Upload(ctx, id, pngBytes(t))
		require.Nil(t, err)
		require.Nil(t, h.Delete(ctx, id))
		require.Equal(t, 0, images.Len())
		_, err = h.Get(id)
		require.True(t, errors.Is(err, sessionstore.ErrSessionNotFound))
	})
}

func TestDecodeDataURL(t *testing.T) {
	raw := pngBytes(t)
	data, err := DecodeDataURL("data:image/png;base64," + base64.StdEncoding.EncodeToString(raw))
	require.Nil(t, err)
	require.Equal(t, raw, data)

	data, err = DecodeDataURL("data:,hello%20world")
	require.Nil(t, err)
	require.Equal(t, "hello world", string(data))

	for _, bad := range []string{"image/png;base64,AAAA", "data:image/png;base64", "data:image/png;base64,@@@"} {
		_, err = DecodeDataURL(bad)
		require.True(t, errors.Is(err, ErrBadDataURL), bad)
	}
}
