package sessioncleanupworker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	var calls []string
	i := newInstance(time.Minute, []Panel{
		{Name: "resume", Sweep: func(context.Context) int { calls = append(calls, "resume"); return 2 }},
		{Name: "coach", Sweep: func(context.Context) int { calls = append(calls, "coach"); return 0 }},
	})

	i.handle(context.Background())
	require.Equal(t, []string{"resume", "coach"}, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls = nil
	i.handle(ctx)
	require.Empty(t, calls)
}
