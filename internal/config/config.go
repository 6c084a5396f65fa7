package config

import "time"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Auth      AuthConfig      `yaml:"auth"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + itoa(d.Port) + "/" + d.Name + "?sslmode=disable"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	s := ""
	for i > 0 {
		s = string(rune('0'+i%10)) + s
		i /= 10
	}
	return s
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type TelemetryConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsPort int    `yaml:"metrics_port"`
}

// AuthConfig controls the identity gate. WhitelistedEmails is a
// comma-separated allow-list; an empty list denies everyone.
// BypassForLocalDev disables both identity extraction and the allow-list
// check and must never be enabled in production.
type AuthConfig struct {
	WhitelistedEmails string `yaml:"whitelisted_emails"`
	BypassForLocalDev bool   `yaml:"bypass_for_local_dev"`
}

// OpenAIConfig configures the model backend. Endpoint and APIKey are
// init-only; if either is missing the gateway stays unconfigured and the
// chat endpoint answers 503.
type OpenAIConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	APIKey     string        `yaml:"api_key"`
	Deployment string        `yaml:"deployment"`
	APIVersion string        `yaml:"api_version"`
	Timeout    time.Duration `yaml:"timeout"`

	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"max_tokens"`
	TopP             float64 `yaml:"top_p"`
	FrequencyPenalty float64 `yaml:"frequency_penalty"`
	PresencePenalty  float64 `yaml:"presence_penalty"`
}

type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"`
	RequestsPerWindow int           `yaml:"requests_per_window"`
	Window            time.Duration `yaml:"window"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     120 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Name:            "dadi",
			User:            "dadi",
			MaxOpenConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Address:  "localhost:6379",
			DB:       0,
			PoolSize: 50,
		},
		Telemetry: TelemetryConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			MetricsPort: 9090,
		},
		OpenAI: OpenAIConfig{
			Deployment:       "chat",
			APIVersion:       "2024-10-21",
			Timeout:          120 * time.Second,
			Temperature:      0.7,
			MaxTokens:        1000,
			TopP:             0.95,
			FrequencyPenalty: 0,
			PresencePenalty:  0,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerWindow: 60,
			Window:            time.Minute,
		},
	}
}
