// Package config lê a configuração do serviço a partir do ambiente (e de um .env opcional).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrInvalidRateMax      = errors.New("LEAD_RATE_MAX must be > 0")
	ErrInvalidRateWindow   = errors.New("LEAD_RATE_WINDOW must be > 0")
	ErrInvalidWebhookURL   = errors.New("N8N_WEBHOOK_URL must be an absolute http(s) URL")
	ErrInvalidWebhookRate  = errors.New("WEBHOOK_RPS and WEBHOOK_BURST must be > 0")
	ErrInvalidConcurrency  = errors.New("CONCURRENCY_MAX must be >= 0")
	ErrMissingStatsRedis   = errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_ENABLED=true")
	ErrInvalidStatsBucket  = errors.New(`RATE_STATS_BUCKET must be "minute" or "none"`)
	ErrInvalidMetricsSpace = errors.New("METRICS_NAMESPACE must not be empty")
)

type Config struct {
	ListenAddr  string
	LogLevel    string
	ContentFile string

	Lead        LeadConfig
	Webhook     WebhookConfig
	Concurrency ConcurrencyConfig
	Stats       StatsConfig

	MetricsNamespace string
}

type LeadConfig struct {
	MaxRequests int
	Window      time.Duration
	SweepEvery  time.Duration
	// RetryAfter > 0 fixa o Retry-After; com 0 ele é calculado por cliente.
	RetryAfter time.Duration
}

type WebhookConfig struct {
	URL     string
	Source  string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

// Enabled indica se os leads são encaminhados (URL configurada).
func (w WebhookConfig) Enabled() bool { return w.URL != "" }

type ConcurrencyConfig struct {
	Max     int
	Timeout time.Duration
}

type StatsConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
	TTL           time.Duration
	Bucket        string
	TrackKeys     bool
}

// Load carrega o .env (se existir) e depois lê o ambiente.
// Variáveis já definidas no processo não são sobrescritas pelo .env.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv monta a configuração só a partir do ambiente atual.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:  getenvDefault("LISTEN_ADDR", ":8080"),
		LogLevel:    getenvDefault("LOG_LEVEL", "info"),
		ContentFile: strings.TrimSpace(os.Getenv("SITE_CONTENT_FILE")),
		Lead: LeadConfig{
			MaxRequests: getenvIntDefault("LEAD_RATE_MAX", 5),
			Window:      getenvDurationDefault("LEAD_RATE_WINDOW", time.Hour),
			SweepEvery:  getenvDurationDefault("LEAD_RATE_SWEEP_EVERY", time.Minute),
			RetryAfter:  getenvDurationDefault("LEAD_RETRY_AFTER", 0),
		},
		Webhook: WebhookConfig{
			URL:     strings.TrimSpace(os.Getenv("N8N_WEBHOOK_URL")),
			Source:  getenvDefault("WEBHOOK_SOURCE", "paragon-pools-website"),
			Timeout: getenvDurationDefault("WEBHOOK_TIMEOUT", 10*time.Second),
			RPS:     getenvFloatDefault("WEBHOOK_RPS", 2),
			Burst:   getenvIntDefault("WEBHOOK_BURST", 5),
		},
		Concurrency: ConcurrencyConfig{
			Max:     getenvIntDefault("CONCURRENCY_MAX", 100),
			Timeout: getenvDurationDefault("CONCURRENCY_TIMEOUT", 0),
		},
		Stats: StatsConfig{
			Enabled:       getenvBoolDefault("RATE_STATS_ENABLED", false),
			RedisAddr:     strings.TrimSpace(os.Getenv("RATE_STATS_REDIS_ADDR")),
			RedisPassword: os.Getenv("RATE_STATS_REDIS_PASSWORD"),
			RedisDB:       getenvIntDefault("RATE_STATS_REDIS_DB", 0),
			Prefix:        getenvDefault("RATE_STATS_PREFIX", "leads:ratelimit"),
			TTL:           getenvDurationDefault("RATE_STATS_TTL", 24*time.Hour),
			Bucket:        strings.ToLower(getenvDefault("RATE_STATS_BUCKET", "minute")),
			TrackKeys:     getenvBoolDefault("RATE_STATS_TRACK_KEYS", false),
		},
		MetricsNamespace: getenvDefault("METRICS_NAMESPACE", "paragon"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checa as regras que os getters sozinhos não cobrem.
func (c *Config) Validate() error {
	if c.Lead.MaxRequests <= 0 {
		return ErrInvalidRateMax
	}
	if c.Lead.Window <= 0 {
		return ErrInvalidRateWindow
	}
	if c.Webhook.Enabled() {
		u, err := url.Parse(c.Webhook.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidWebhookURL, c.Webhook.URL)
		}
	}
	if c.Webhook.RPS <= 0 || c.Webhook.Burst <= 0 {
		return ErrInvalidWebhookRate
	}
	if c.Concurrency.Max < 0 {
		return ErrInvalidConcurrency
	}
	if c.Stats.Enabled && c.Stats.RedisAddr == "" {
		return ErrMissingStatsRedis
	}
	if c.Stats.Bucket != "minute" && c.Stats.Bucket != "none" {
		return ErrInvalidStatsBucket
	}
	if strings.TrimSpace(c.MetricsNamespace) == "" {
		return ErrInvalidMetricsSpace
	}
	return nil
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return d
}
