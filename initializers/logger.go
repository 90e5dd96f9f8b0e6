package initializers

import (
	"strings"

	"cvforge-backend/fiberlog"

	log "github.com/sirupsen/logrus"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	log.SetLevel(log.InfoLevel)

	logger := log.New()
	logger.SetFormatter(jsonFormatter())
	logger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: logger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.RequestID,
		},
		// binary downloads and probes stay out of the request log
		Skip: func(path string) bool {
			return path == "/healthz" || path == "/metrics" ||
				strings.HasSuffix(path, "/image") ||
				strings.HasSuffix(path, "/export/pdf") ||
				strings.HasSuffix(path, "/transcript.xlsx")
		},
	}
}
