package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Auth     AuthConfig     `mapstructure:"auth"`
	AI       AIConfig       `mapstructure:"ai"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port int `mapstructure:"port"`
}

// AppConfig contains product-level settings.
type AppConfig struct {
	// PublicBaseURL is the externally reachable address of this service;
	// the export pipeline navigates the headless browser to it.
	PublicBaseURL string `mapstructure:"public_base_url"`
	MaxResumes    int    `mapstructure:"max_resumes"`
	CookieDomain  string `mapstructure:"cookie_domain"`
	ClamdAddr     string `mapstructure:"clamd_addr"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
}

// AuthConfig contains JWT signing material and token lifetimes.
type AuthConfig struct {
	PrivateKeyPEM   string `mapstructure:"private_key_pem"`
	PublicKeyPEM    string `mapstructure:"public_key_pem"`
	AccessTTLMin    int    `mapstructure:"access_ttl_min"`
	RefreshTTLHours int    `mapstructure:"refresh_ttl_hours"`
}

// AIConfig selects and configures the text-generation provider.
type AIConfig struct {
	// Provider is "openai" or "zhipu"; empty disables the drafting endpoints.
	Provider      string `mapstructure:"provider"`
	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	OpenAIModel   string `mapstructure:"openai_model"`
	ZhipuAPIKey   string `mapstructure:"zhipu_api_key"`
	ZhipuModel    string `mapstructure:"zhipu_model"`
}

// AccessTTL converts the configured minutes into a duration.
func (a AuthConfig) AccessTTL() time.Duration {
	return time.Duration(a.AccessTTLMin) * time.Minute
}

// RefreshTTL converts the configured hours into a duration.
func (a AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(a.RefreshTTLHours) * time.Hour
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("app.public_base_url", "http://localhost:8080")
	v.SetDefault("app.max_resumes", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "resumify")
	v.SetDefault("database.user", "resumify")
	v.SetDefault("database.password", "resumify")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "resumes")
	v.SetDefault("auth.access_ttl_min", 15)
	v.SetDefault("auth.refresh_ttl_hours", 168)
	v.SetDefault("ai.openai_model", "gpt-4o-mini")
	v.SetDefault("ai.zhipu_model", "glm-4-flash")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                "API_PORT",
		"app.public_base_url":     "PUBLIC_BASE_URL",
		"app.max_resumes":         "MAX_RESUMES",
		"app.cookie_domain":       "COOKIE_DOMAIN",
		"app.clamd_addr":          "CLAMD_ADDR",
		"database.host":           "DATABASE_HOST",
		"database.port":           "DATABASE_PORT",
		"database.name":           "POSTGRES_DB",
		"database.user":           "POSTGRES_USER",
		"database.password":       "POSTGRES_PASSWORD",
		"database.sslmode":        "DATABASE_SSLMODE",
		"redis.host":              "REDIS_HOST",
		"redis.port":              "REDIS_PORT",
		"minio.endpoint":          "MINIO_ENDPOINT",
		"minio.access_key_id":     "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key": "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":           "MINIO_USE_SSL",
		"minio.bucket":            "MINIO_BUCKET",
		"auth.private_key_pem":    "AUTH_PRIVATE_KEY_PEM",
		"auth.public_key_pem":     "AUTH_PUBLIC_KEY_PEM",
		"auth.access_ttl_min":     "AUTH_ACCESS_TTL_MIN",
		"auth.refresh_ttl_hours":  "AUTH_REFRESH_TTL_HOURS",
		"ai.provider":             "AI_PROVIDER",
		"ai.openai_api_key":       "OPENAI_API_KEY",
		"ai.openai_base_url":      "OPENAI_BASE_URL",
		"ai.openai_model":         "OPENAI_MODEL",
		"ai.zhipu_api_key":        "ZHIPU_API_KEY",
		"ai.zhipu_model":          "ZHIPU_MODEL",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.App.PublicBaseURL == "" {
		return errors.New("public base url is required")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if cfg.Auth.PrivateKeyPEM == "" {
		return errors.New("auth private key pem is required")
	}
	if cfg.Auth.PublicKeyPEM == "" {
		return errors.New("auth public key pem is required")
	}
	switch cfg.AI.Provider {
	case "", "openai", "zhipu":
	default:
		return fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
	return nil
}
