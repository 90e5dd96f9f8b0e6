package sessionstore

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type counter struct {
	N int
}

func TestStore(t *testing.T) {
	t.Run(`create get update delete`, func(t *testing.T) {
		s := New[counter](time.Minute)
		id := s.Create(counter{N: 1})
		got, err := s.Get(id)
		require.Nil(t, err)
		require.Equal(t, 1, got.N)

		err = s.Update(id, func(c *counter) error {
			c.N++
			return nil
		})
		require.Nil(t, err)
		got, _ = s.Get(id)
		require.Equal(t, 2, got.N)

		require.Nil(t, s.Delete(id))
		_, err = s.Get(id)
		require.True(t, errors.Is(err, ErrSessionNotFound))
		require.True(t, errors.Is(s.Delete(id), ErrSessionNotFound))
	})

	t.Run(`get returns a copy`, func(t *testing.T) {
		s := New[counter](time.Minute)
		id := s.Create(counter{N: 5})
		got, _ := s.Get(id)
		got.N = 100
		again, _ := s.Get(id)
		require.Equal(t, 5, again.N)
	})

	t.Run(`update error is returned`, func(t *testing.T) {
		s := New[counter](time.Minute)
		id := s.Create(counter{})
		err := s.Update(id, func(c *counter) error {
			return errors.New("nope")
		})
		require.EqualError(t, err, "nope")
	})

	t.Run(`sweep drops idle sessions only`, func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s := New[counter](time.Minute).WithClock(func() time.Time { return now })
		idle := s.Create(counter{})
		now = now.Add(30 * time.Second)
		active := s.Create(counter{})
		now = now.Add(45 * time.Second)

		removed := s.Sweep()
		require.Equal(t, []string{idle}, removed)
		require.Equal(t, 1, s.Len())
		_, err := s.Get(active)
		require.Nil(t, err)
	})

	t.Run(`zero ttl never expires`, func(t *testing.T) {
		s := New[counter](0)
		s.Create(counter{})
		require.Empty(t, s.Sweep())
		require.Equal(t, 1, s.Len())
	})
}
