// Package config loads cloudspark settings from the environment.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/muhammedrahil/cloudspark/pkg/cloudspark"
)

// Config is the environment-driven configuration for a cloudspark session.
type Config struct {
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"AWS_SESSION_TOKEN"`
	Endpoint        string `env:"AWS_S3_ENDPOINT"`
	Bucket          string `env:"AWS_S3_BUCKET"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// SessionConfig converts the environment configuration into session options.
func (c Config) SessionConfig() cloudspark.Config {
	return cloudspark.Config{
		Region:          c.Region,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
		Endpoint:        c.Endpoint,
		UsePathStyle:    c.UsePathStyle,
		Bucket:          c.Bucket,
	}
}
