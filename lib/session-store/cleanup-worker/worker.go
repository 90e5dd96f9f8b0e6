package sessioncleanupworker

import (
	"context"
	"time"

	"cvforge-backend/lib/metrics"
	baseworker "cvforge-backend/lib/utils/base-worker"
	"cvforge-backend/lib/utils/helpers"
)

// Panel drops the expired sessions of one panel and reports how many.
type Panel struct {
	Name  string
	Sweep func(ctx context.Context) int
}

func StartWorker(ctx context.Context, interval time.Duration, panels []Panel) {
	i := newInstance(interval, panels)
	go i.Run(ctx, i.handle)
}

func newInstance(interval time.Duration, panels []Panel) *impl {
	return &impl{
		BaseImpl: *baseworker.NewInstance("SessionCleanupWorker", interval, interval),
		panels:   panels,
	}
}

type impl struct {
	baseworker.BaseImpl
	panels []Panel
}

func (i impl) handle(ctx context.Context) {
	for _, panel := range i.panels {
		if helpers.IsContextDone(ctx) {
			return
		}
		n := panel.Sweep(ctx)
		metrics.ObserveExpiredSessions(panel.Name, n)
		if n > 0 {
			i.GetLogger().
				WithField("panel", panel.Name).
				WithField("expired", n).
				Info("expired sessions dropped")
		}
	}
}
