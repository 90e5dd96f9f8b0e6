package wsclient

import (
	"io"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type frame struct {
	msgType int
	data    string
}

type scriptedReader struct {
	frames []frame
}

func (r *scriptedReader) ReadMessage() (int, []byte, error) {
	if len(r.frames) == 0 {
		return 0, nil, io.EOF
	}
	f := r.frames[0]
	r.frames = r.frames[1:]
	return f.msgType, []byte(f.data), nil
}

func TestDispatch(t *testing.T) {
	reader := &scriptedReader{frames: []frame{
		{websocket.TextMessage, " hello "},
		{websocket.BinaryMessage, "skip"},
		{websocket.TextMessage, "fail"},
	}}
	var got []string
	var reported []error
	client := NewClient("s1", reader,
		func(text string) error {
			got = append(got, text)
			if text == "fail" {
				return io.ErrUnexpectedEOF
			}
			return nil
		},
		func(err error) { reported = append(reported, err) },
	)
	client.Dispatch()

	require.Equal(t, []string{"hello", "fail"}, got)
	require.Len(t, reported, 1)
	require.True(t, errors.Is(reported[0], io.ErrUnexpectedEOF))
}
