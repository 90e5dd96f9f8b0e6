package store

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, _, err := s.Get(ctx, "a")
	require.True(t, errors.Is(err, ErrImageNotFound))

	require.Nil(t, s.Put(ctx, "a", []byte{1, 2}, "image/png"))
	require.Nil(t, s.Put(ctx, "a", []byte{3}, "image/jpeg"))
	data, ct, err := s.Get(ctx, "a")
	require.Nil(t, err)
	require.Equal(t, []byte{3}, data)
	require.Equal(t, "image/jpeg", ct)

	// returned bytes are a copy
	data[0] = 9
	data, _, _ = s.Get(ctx, "a")
	require.Equal(t, []byte{3}, data)

	require.Nil(t, s.Remove(ctx, "a"))
	require.Nil(t, s.Remove(ctx, "a"))
	require.Equal(t, 0, s.Len())
}
