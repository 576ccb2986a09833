package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Log        LogConfig        `mapstructure:"log"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Ingest     IngestConfig     `mapstructure:"ingest"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// AuthConfig holds operator credentials for the ingestion trigger.
// OperatorKeyHash is an Argon2id hash of the operator access key;
// empty hash leaves the ingestion endpoint unauthenticated.
type AuthConfig struct {
	OperatorKeyHash string `mapstructure:"operator_key_hash"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// ThresholdsConfig holds the classification threshold instants (RFC 3339).
type ThresholdsConfig struct {
	SellCutoff string `mapstructure:"sell_cutoff"`
	WindowEnd  string `mapstructure:"window_end"`
	LateEntry  string `mapstructure:"late_entry"`
}

// Parse returns the three threshold instants.
func (t ThresholdsConfig) Parse() (sellCutoff, windowEnd, lateEntry time.Time, err error) {
	if sellCutoff, err = time.Parse(time.RFC3339, t.SellCutoff); err != nil {
		return time.Time{}, time.Time{}, time.Time{}, fmt.Errorf("parsing sell_cutoff: %w", err)
	}
	if windowEnd, err = time.Parse(time.RFC3339, t.WindowEnd); err != nil {
		return time.Time{}, time.Time{}, time.Time{}, fmt.Errorf("parsing window_end: %w", err)
	}
	if lateEntry, err = time.Parse(time.RFC3339, t.LateEntry); err != nil {
		return time.Time{}, time.Time{}, time.Time{}, fmt.Errorf("parsing late_entry: %w", err)
	}
	return sellCutoff, windowEnd, lateEntry, nil
}

// IngestConfig holds the spreadsheet ingestion settings.
type IngestConfig struct {
	SheetPath string `mapstructure:"sheet_path"`
	// KeepUnclassified persists rows whose timestamp matched no eligibility
	// window; the default drops them from the directory entirely.
	KeepUnclassified bool `mapstructure:"keep_unclassified"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SES_ (Staking Eligibility Service).
// Nested keys use underscore: SES_DATABASE_HOST, SES_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "staking_eligibility")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "staking-eligibility-service")
	v.SetDefault("auth.operator_key_hash", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("thresholds.sell_cutoff", "2024-06-17T00:00:00Z")
	v.SetDefault("thresholds.window_end", "2024-08-01T00:00:00Z")
	v.SetDefault("thresholds.late_entry", "2024-07-22T00:00:00Z")
	v.SetDefault("ingest.sheet_path", "whitelistedAccounts.xlsx")
	v.SetDefault("ingest.keep_unclassified", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SES_DATABASE_HOST -> database.host
	v.SetEnvPrefix("SES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
