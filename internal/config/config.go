package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	JWT         JWTConfig      `mapstructure:"jwt"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	Alerts      AlertsConfig   `mapstructure:"alerts"`
	Reorder     ReorderConfig  `mapstructure:"reorder"`
	RateLimit   RateConfig     `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig holds the Postgres url. An empty url selects the in-memory store.
type DatabaseConfig struct {
	URL  string `mapstructure:"url"`
	Seed bool   `mapstructure:"seed"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type KafkaConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
	ClientID string   `mapstructure:"client_id"`
	Retries  int      `mapstructure:"retries"`
}

type AlertsConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	DigestInterval   time.Duration `mapstructure:"digest_interval"`
	From             string        `mapstructure:"from"`
	To               string        `mapstructure:"to"`
	SMTPServer       string        `mapstructure:"smtp_server"`
	SMTPPort         int           `mapstructure:"smtp_port"`
	SMTPUser         string        `mapstructure:"smtp_user"`
	SMTPPassword     string        `mapstructure:"smtp_password"`
	SMTPAuthDisabled bool          `mapstructure:"smtp_auth_disabled"`
}

type ReorderConfig struct {
	BufferUnits      int     `mapstructure:"buffer_units"`
	BufferFactor     float64 `mapstructure:"buffer_factor"`
	HighDeficitRatio float64 `mapstructure:"high_deficit_ratio"`
}

type RateConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.url", "")
	v.SetDefault("database.seed", true)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "change-me-in-production-min-32-chars")
	v.SetDefault("jwt.ttl", time.Hour)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "inventory.stock")
	v.SetDefault("kafka.client_id", "warehouse-inventory")
	v.SetDefault("kafka.retries", 3)
	v.SetDefault("alerts.enabled", false)
	v.SetDefault("alerts.digest_interval", 24*time.Hour)
	v.SetDefault("alerts.from", "")
	v.SetDefault("alerts.to", "")
	v.SetDefault("alerts.smtp_server", "")
	v.SetDefault("alerts.smtp_port", 587)
	v.SetDefault("alerts.smtp_user", "")
	v.SetDefault("alerts.smtp_password", "")
	v.SetDefault("alerts.smtp_auth_disabled", false)
	v.SetDefault("reorder.buffer_units", 10)
	v.SetDefault("reorder.buffer_factor", 0.0)
	v.SetDefault("reorder.high_deficit_ratio", 0.5)
	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)
}

// Load reads .env (if present), then config.yaml from the given paths (if present),
// then INVENTORY_* environment variables, in increasing priority.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if len(paths) == 0 {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.Reorder.BufferUnits < 0 || c.Reorder.BufferFactor < 0 {
		return fmt.Errorf("reorder buffer must not be negative")
	}
	if c.Reorder.HighDeficitRatio <= 0 || c.Reorder.HighDeficitRatio > 1 {
		return fmt.Errorf("reorder.high_deficit_ratio must be in (0, 1]")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
