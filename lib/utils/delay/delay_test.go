package delay

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduler(t *testing.T) {
	t.Run(`immediate runs inline`, func(t *testing.T) {
		ran := false
		Immediate{}.After(time.Hour, func() { ran = true })
		require.True(t, ran)
	})

	t.Run(`manual flush order`, func(t *testing.T) {
		m := &Manual{}
		var got []int
		m.After(0, func() { got = append(got, 1) })
		m.After(0, func() { got = append(got, 2) })
		require.Equal(t, 2, m.Len())
		m.Flush(1, 0)
		require.Equal(t, []int{2, 1}, got)
		require.Equal(t, 0, m.Len())
	})

	t.Run(`timer fires`, func(t *testing.T) {
		tm := NewTimer()
		var n int32
		done := make(chan struct{})
		tm.After(5*time.Millisecond, func() {
			atomic.AddInt32(&n, 1)
			close(done)
		})
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("task did not fire")
		}
		require.Equal(t, int32(1), atomic.LoadInt32(&n))
		tm.Stop()
		require.Equal(t, 0, tm.Pending())
	})

	t.Run(`timer stop cancels pending`, func(t *testing.T) {
		tm := NewTimer()
		var n int32
		tm.After(time.Hour, func() { atomic.AddInt32(&n, 1) })
		require.Equal(t, 1, tm.Pending())
		tm.Stop()
		require.Equal(t, 0, tm.Pending())
		tm.After(0, func() { atomic.AddInt32(&n, 1) })
		time.Sleep(10 * time.Millisecond)
		require.Equal(t, int32(0), atomic.LoadInt32(&n))
	})
}
