package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, 5, cfg.Lead.MaxRequests)
	require.Equal(t, time.Hour, cfg.Lead.Window)
	require.Equal(t, time.Minute, cfg.Lead.SweepEvery)
	require.Zero(t, cfg.Lead.RetryAfter)
	require.False(t, cfg.Webhook.Enabled())
	require.Equal(t, "paragon-pools-website", cfg.Webhook.Source)
	require.Equal(t, 100, cfg.Concurrency.Max)
	require.Equal(t, "leads:ratelimit", cfg.Stats.Prefix)
	require.Equal(t, "paragon", cfg.MetricsNamespace)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("LEAD_RATE_MAX", "3")
	t.Setenv("LEAD_RATE_WINDOW", "10m")
	t.Setenv("N8N_WEBHOOK_URL", "https://hooks.example.com/lead")
	t.Setenv("WEBHOOK_TIMEOUT", "2s")
	t.Setenv("RATE_STATS_ENABLED", "true")
	t.Setenv("RATE_STATS_REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_STATS_BUCKET", "NONE")

	cfg, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.ListenAddr)
	require.Equal(t, 3, cfg.Lead.MaxRequests)
	require.Equal(t, 10*time.Minute, cfg.Lead.Window)
	require.True(t, cfg.Webhook.Enabled())
	require.Equal(t, 2*time.Second, cfg.Webhook.Timeout)
	require.True(t, cfg.Stats.Enabled)
	require.Equal(t, "none", cfg.Stats.Bucket)
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("LEAD_RATE_MAX", "lots")
	t.Setenv("LEAD_RATE_WINDOW", "forever")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Lead.MaxRequests)
	require.Equal(t, time.Hour, cfg.Lead.Window)
}

func TestFromEnv_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{name: "zero max", env: map[string]string{"LEAD_RATE_MAX": "0"}, want: ErrInvalidRateMax},
		{name: "negative window", env: map[string]string{"LEAD_RATE_WINDOW": "-1m"}, want: ErrInvalidRateWindow},
		{name: "relative webhook", env: map[string]string{"N8N_WEBHOOK_URL": "/hook"}, want: ErrInvalidWebhookURL},
		{name: "ftp webhook", env: map[string]string{"N8N_WEBHOOK_URL": "ftp://example.com/x"}, want: ErrInvalidWebhookURL},
		{name: "webhook burst", env: map[string]string{"WEBHOOK_BURST": "0"}, want: ErrInvalidWebhookRate},
		{name: "concurrency", env: map[string]string{"CONCURRENCY_MAX": "-1"}, want: ErrInvalidConcurrency},
		{name: "stats without redis", env: map[string]string{"RATE_STATS_ENABLED": "1"}, want: ErrMissingStatsRedis},
		{name: "stats bucket", env: map[string]string{"RATE_STATS_BUCKET": "hour"}, want: ErrInvalidStatsBucket},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LEAD_RATE_MAX=7\n"), 0o600))

	t.Chdir(dir)

	// godotenv não sobrescreve variáveis já definidas; garante que a chave não existe.
	t.Setenv("LEAD_RATE_MAX", "")
	require.NoError(t, os.Unsetenv("LEAD_RATE_MAX"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Lead.MaxRequests)
}
