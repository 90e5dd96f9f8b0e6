// Package metrics exposes Prometheus counters for the panel operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvforge_verifications_total",
			Help: "Finished document verifications by verdict",
		},
		[]string{"verdict"},
	)
	coachRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvforge_coach_replies_total",
			Help: "Coach replies by the rule that produced them",
		},
		[]string{"kind"},
	)
	resumeExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvforge_resume_exports_total",
			Help: "Resume exports by format",
		},
		[]string{"format"},
	)
	capturesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvforge_captures_total",
			Help: "Stored images by source",
		},
		[]string{"source"},
	)
	sessionsExpiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvforge_sessions_expired_total",
			Help: "Panel sessions dropped by the cleanup worker",
		},
		[]string{"panel"},
	)
)

func ObserveVerification(verdict string) {
	verificationsTotal.WithLabelValues(verdict).Inc()
}

func ObserveCoachReply(kind string) {
	coachRepliesTotal.WithLabelValues(kind).Inc()
}

func ObserveResumeExport(format string) {
	resumeExportsTotal.WithLabelValues(format).Inc()
}

func ObserveCapture(source string) {
	capturesTotal.WithLabelValues(source).Inc()
}

func ObserveExpiredSessions(panel string, n int) {
	if n > 0 {
		sessionsExpiredTotal.WithLabelValues(panel).Add(float64(n))
	}
}
