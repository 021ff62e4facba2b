package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           int           `mapstructure:"port" envconfig:"SERVER_PORT"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" envconfig:"SERVER_REQUEST_TIMEOUT"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes" envconfig:"SERVER_MAX_BODY_BYTES"`
}

type DatabaseConfig struct {
	Host                   string `mapstructure:"host" envconfig:"DB_HOST"`
	Port                   int    `mapstructure:"port" envconfig:"DB_PORT"`
	User                   string `mapstructure:"user" envconfig:"DB_USER"`
	Password               string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name                   string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode                string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" envconfig:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" envconfig:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" envconfig:"DB_CONN_MAX_LIFETIME_MINUTES"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
}

// OTPConfig selects the reset-code store. Backend is "memory" or
// "redis"; redis survives restarts, memory does not.
type OTPConfig struct {
	Backend  string `mapstructure:"backend" envconfig:"OTP_BACKEND"`
	RedisURL string `mapstructure:"redis_url" envconfig:"OTP_REDIS_URL"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

type AuthConfig struct {
	DoctorEmailDomain string `mapstructure:"doctor_email_domain" envconfig:"DOCTOR_EMAIL_DOMAIN"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" envconfig:"LOG_LEVEL"`
	Pretty bool   `mapstructure:"pretty" envconfig:"LOG_PRETTY"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace" envconfig:"METRICS_NAMESPACE"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	OTP       OTPConfig       `mapstructure:"otp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// LoadConfig reads config.yml and applies environment overrides on top.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	return &config, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   12 << 20,
		},
		Database: DatabaseConfig{
			Host:                   "localhost",
			Port:                   5432,
			SSLMode:                "disable",
			MaxOpenConns:           25,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
		},
		JWT: JWTConfig{ExpiryHours: 24},
		OTP: OTPConfig{Backend: "memory"},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
		},
		Auth:    AuthConfig{DoctorEmailDomain: "@healthhub.com"},
		Log:     LogConfig{Level: "info", Pretty: true},
		Metrics: MetricsConfig{Namespace: "healthhub"},
	}
}
