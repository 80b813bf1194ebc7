package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.False(t, cfg.UsePathStyle)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AWS_S3_REGION", "eu-west-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "topsecret")
	t.Setenv("AWS_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("AWS_S3_BUCKET", "videos")
	t.Setenv("AWS_S3_USE_PATH_STYLE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "AKIDEXAMPLE", cfg.AccessKeyID)
	assert.Equal(t, "http://localhost:9000", cfg.Endpoint)
	assert.Equal(t, "videos", cfg.Bucket)
	assert.True(t, cfg.UsePathStyle)
}

func TestSessionConfig(t *testing.T) {
	cfg := Config{
		Region:          "us-west-2",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "topsecret",
		Bucket:          "videos",
	}

	sc := cfg.SessionConfig()
	assert.Equal(t, "us-west-2", sc.Region)
	assert.Equal(t, "AKIDEXAMPLE", sc.AccessKeyID)
	assert.Equal(t, "videos", sc.Bucket)
}
