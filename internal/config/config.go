package config

import (
	"time"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings for the analysis proxy.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// StoreConfig selects and configures the hosted entry store.
type StoreConfig struct {
	Backend     domain.StoreBackend `yaml:"backend"      env:"STORE_BACKEND"      env-default:"postgres"`
	Table       string              `yaml:"table"        env:"STORE_TABLE"        env-default:"entries"`
	SupabaseURL string              `yaml:"supabase_url" env:"SUPABASE_URL"`
	SupabaseKey string              `yaml:"supabase_key" env:"SUPABASE_KEY"`
}

// AnalysisConfig selects and configures the completion service.
//
// With provider "proxy" the client never holds the upstream credential: it
// sends entries to ProxyURL authenticated by ProxyToken, and the server side
// runs with provider "openai" or "anthropic".
type AnalysisConfig struct {
	Provider   domain.AnalysisProvider `yaml:"provider"    env:"ANALYSIS_PROVIDER"    env-default:"openai"`
	BaseURL    string                  `yaml:"base_url"    env:"ANALYSIS_BASE_URL"`
	APIKey     string                  `yaml:"api_key"     env:"ANALYSIS_API_KEY"`
	Model      string                  `yaml:"model"       env:"ANALYSIS_MODEL"`
	MaxTokens  int                     `yaml:"max_tokens"  env:"ANALYSIS_MAX_TOKENS"  env-default:"800"`
	Timeout    time.Duration           `yaml:"timeout"     env:"ANALYSIS_TIMEOUT"     env-default:"60s"`
	Language   string                  `yaml:"language"    env:"ANALYSIS_LANGUAGE"`
	ProxyURL   string                  `yaml:"proxy_url"   env:"ANALYSIS_PROXY_URL"`
	ProxyToken string                  `yaml:"proxy_token" env:"ANALYSIS_PROXY_TOKEN"`
}

// ModelOrDefault returns the configured model or the provider's default.
func (c AnalysisConfig) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case domain.AnalysisProviderAnthropic:
		return "claude-sonnet-4-5"
	default:
		return "gpt-3.5-turbo"
	}
}

// AuthConfig holds settings for proxy access tokens.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"mental-clarity"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"720h"`
}

// LogConfig holds logging settings. File, when set, redirects log output
// away from stderr (used by the terminal client).
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	File   string `yaml:"file"   env:"LOG_FILE"`
}

// MetricsConfig holds Prometheus exposition settings. Exposition is opt-in.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"false"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
