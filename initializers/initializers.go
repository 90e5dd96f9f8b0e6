package initializers

import (
	"context"
	"time"

	"cvforge-backend/config"
	"cvforge-backend/fiberlog"
	capturehandler "cvforge-backend/lib/capture"
	coachhandler "cvforge-backend/lib/coach"
	xlsexport "cvforge-backend/lib/export/xls"
	resumehandler "cvforge-backend/lib/resume"
	sessioncleanupworker "cvforge-backend/lib/session-store/cleanup-worker"
	"cvforge-backend/lib/utils/delay"
	initchecker "cvforge-backend/lib/utils/init-checker"
	"cvforge-backend/lib/utils/random"
	verificationhandler "cvforge-backend/lib/verification"
	connectionhub "cvforge-backend/lib/ws/hub/connection-hub"
)

var (
	LoggerConfig *fiberlog.Config
	// Scheduler runs the simulated verification and coach latencies.
	Scheduler *delay.Timer
)

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	Scheduler = delay.NewTimer()
	src := random.Default()
	ttl := time.Duration(config.Conf.Session.TTLSec) * time.Second

	connectionhub.Init()
	xlsexport.NewHandler()
	capturehandler.NewHandler(capturehandler.Config{
		MaxImageMB: config.Conf.Capture.MaxImageMB,
		TTL:        ttl,
	}, InitImageStore(ctx))
	resumehandler.NewHandler(ttl, config.Conf.Export.PrintDelayMs)
	verificationhandler.NewHandler(verificationhandler.Config{
		Delay:     time.Duration(config.Conf.Verify.DelayMs) * time.Millisecond,
		MaxFileMB: config.Conf.Verify.MaxFileMB,
		TTL:       ttl,
	}, Scheduler, src)
	coachhandler.NewHandler(coachhandler.Config{
		ReplyDelay:  time.Duration(config.Conf.Coach.ReplyDelayMs) * time.Millisecond,
		DefaultRole: config.Conf.Coach.DefaultRole,
		TTL:         ttl,
	}, Scheduler, src, connectionhub.Instance, xlsexport.Instance)

	initchecker.CheckInit(
		"connectionhub", connectionhub.Instance,
		"xlsexport", xlsexport.Instance,
		"capturehandler", capturehandler.Instance,
		"resumehandler", resumehandler.Instance,
		"verificationhandler", verificationhandler.Instance,
		"coachhandler", coachhandler.Instance,
	)
	initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// panel state is dropped once its session sits idle past the TTL
	sessioncleanupworker.StartWorker(ctx,
		time.Duration(config.Conf.Session.CleanupIntervalSec)*time.Second,
		[]sessioncleanupworker.Panel{
			{Name: "capture", Sweep: capturehandler.Instance.Sweep},
			{Name: "resume", Sweep: func(context.Context) int { return resumehandler.Instance.Sweep() }},
			{Name: "verify", Sweep: func(context.Context) int { return verificationhandler.Instance.Sweep() }},
			{Name: "coach", Sweep: func(context.Context) int { return coachhandler.Instance.Sweep() }},
		})
}
