package config

import (
	"os"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		BodyLimitMB int    `default:"100" env:"APP_BODY_LIMIT_MB"`
		SwaggerFile string `default:"./docs/swagger.json" env:"APP_SWAGGER_FILE"`
		// ErrNotifyAddr receives every 5xx answer as JSON when set
		ErrNotifyAddr string `default:"" env:"APP_ERR_NOTIFY_ADDR"`
	}
	S3 struct {
		Enabled         *bool  `default:"false" env:"S3_ENABLED"`
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"cvforge-captures" env:"S3_BUCKET_NAME"`
	}
	Session struct {
		TTLSec             int `default:"1800" env:"SESSION_TTL_SEC"`
		CleanupIntervalSec int `default:"60" env:"SESSION_CLEANUP_INTERVAL_SEC"`
	}
	Capture struct {
		MaxImageMB int `default:"20" env:"CAPTURE_MAX_IMAGE_MB"`
	}
	Verify struct {
		DelayMs   int `default:"900" env:"VERIFY_DELAY_MS"`
		MaxFileMB int `default:"5" env:"VERIFY_MAX_FILE_MB"`
	}
	Coach struct {
		ReplyDelayMs int    `default:"500" env:"COACH_REPLY_DELAY_MS"`
		DefaultRole  string `default:"Software Engineer" env:"COACH_DEFAULT_ROLE"`
	}
	Export struct {
		PrintDelayMs int `default:"500" env:"EXPORT_PRINT_DELAY_MS"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err = godotenv.Load(); err != nil {
			log.WithError(err).Warn("failed to load .env file")
		}
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
