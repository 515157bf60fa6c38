// Package config provides Viper-based configuration loading for the
// adventure binaries.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Hint providers.
const (
	HintsStatic    = "static"
	HintsAnthropic = "anthropic"
)

// GameConfig holds content settings.
type GameConfig struct {
	// ContentDir is the directory holding game, rooms, items, puzzles and
	// optional commands documents.
	ContentDir string `mapstructure:"content_dir"`
	// HistoryLimit bounds each session's command history. Zero keeps everything.
	HistoryLimit int `mapstructure:"history_limit"`
	// ScriptInstructionLimit bounds Lua opcodes per hook call. Zero uses the default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig selects where saved games live.
type StorageConfig struct {
	// Backend is one of "memory", "redis" or "postgres".
	Backend string `mapstructure:"backend"`
	// SnapshotTTL expires saved games in backends that support it. Zero keeps them forever.
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
}

// TelnetConfig holds Telnet acceptor settings.
type TelnetConfig struct {
	// Host is the bind address for the Telnet listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the Telnet listener.
	Port int `mapstructure:"port"`
	// ReadTimeout is the per-read timeout for Telnet connections.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-write timeout for Telnet connections.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// WrapWidth is the column at which output is word-wrapped. Zero disables wrapping.
	WrapWidth int `mapstructure:"wrap_width"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (t TelnetConfig) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// HealthConfig holds the gRPC health endpoint settings.
type HealthConfig struct {
	Host string `mapstructure:"host"`
	// Port of zero disables the health endpoint.
	Port int `mapstructure:"port"`
}

// Enabled reports whether the health endpoint should be served.
func (h HealthConfig) Enabled() bool { return h.Port != 0 }

// Addr returns the "host:port" gRPC address.
func (h HealthConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File redirects log output away from stderr when set. The terminal
	// client needs this because the screen belongs to the UI.
	File string `mapstructure:"file"`
}

// HintsConfig selects the hint provider.
type HintsConfig struct {
	// Provider is "static" or "anthropic".
	Provider  string        `mapstructure:"provider"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Config is the top-level application configuration.
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Telnet   TelnetConfig   `mapstructure:"telnet"`
	Health   HealthConfig   `mapstructure:"health"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Hints    HintsConfig    `mapstructure:"hints"`
}

// Validate checks all configuration invariants. The database and redis
// sections are only checked when the storage backend uses them.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	errs := []error{
		validateGame(c.Game),
		validateStorage(c.Storage),
		validateTelnet(c.Telnet),
		validateHealth(c.Health),
		validateLogging(c.Logging),
		validateHints(c.Hints),
	}
	switch c.Storage.Backend {
	case BackendPostgres:
		errs = append(errs, validateDatabase(c.Database))
	case BackendRedis:
		errs = append(errs, validateRedis(c.Redis))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func validPort(p int) bool { return p >= 1 && p <= 65535 }

func validateGame(g GameConfig) error {
	var errs []error
	if g.ContentDir == "" {
		errs = append(errs, errors.New("game.content_dir must not be empty"))
	}
	if g.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("game.history_limit must be >= 0, got %d", g.HistoryLimit))
	}
	if g.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Errorf("game.script_instruction_limit must be >= 0, got %d", g.ScriptInstructionLimit))
	}
	return errors.Join(errs...)
}

func validateStorage(s StorageConfig) error {
	var errs []error
	switch s.Backend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be one of [memory, redis, postgres], got %q", s.Backend))
	}
	if s.SnapshotTTL < 0 {
		errs = append(errs, errors.New("storage.snapshot_ttl must not be negative"))
	}
	return errors.Join(errs...)
}

func validateDatabase(d DatabaseConfig) error {
	var errs []error
	if d.Host == "" {
		errs = append(errs, errors.New("database.host must not be empty"))
	}
	if !validPort(d.Port) {
		errs = append(errs, fmt.Errorf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, errors.New("database.user must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("database.name must not be empty"))
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Errorf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Errorf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Errorf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, errors.New("database.min_conns must not exceed database.max_conns"))
	}
	return errors.Join(errs...)
}

func validateRedis(r RedisConfig) error {
	var errs []error
	if r.Addr == "" {
		errs = append(errs, errors.New("redis.addr must not be empty"))
	}
	if r.DB < 0 {
		errs = append(errs, fmt.Errorf("redis.db must be >= 0, got %d", r.DB))
	}
	return errors.Join(errs...)
}

func validateTelnet(t TelnetConfig) error {
	var errs []error
	if !validPort(t.Port) {
		errs = append(errs, fmt.Errorf("telnet.port must be 1-65535, got %d", t.Port))
	}
	if t.ReadTimeout < 0 {
		errs = append(errs, errors.New("telnet.read_timeout must not be negative"))
	}
	if t.WriteTimeout < 0 {
		errs = append(errs, errors.New("telnet.write_timeout must not be negative"))
	}
	if t.WrapWidth < 0 {
		errs = append(errs, fmt.Errorf("telnet.wrap_width must be >= 0, got %d", t.WrapWidth))
	}
	return errors.Join(errs...)
}

func validateHealth(h HealthConfig) error {
	if !h.Enabled() {
		return nil
	}
	var errs []error
	if h.Host == "" {
		errs = append(errs, errors.New("health.host must not be empty"))
	}
	if !validPort(h.Port) {
		errs = append(errs, fmt.Errorf("health.port must be 0 or 1-65535, got %d", h.Port))
	}
	return errors.Join(errs...)
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateHints(h HintsConfig) error {
	switch h.Provider {
	case HintsStatic:
		return nil
	case HintsAnthropic:
	default:
		return fmt.Errorf("hints.provider must be one of [static, anthropic], got %q", h.Provider)
	}
	var errs []error
	if h.Model == "" {
		errs = append(errs, errors.New("hints.model must not be empty"))
	}
	if h.APIKey == "" {
		errs = append(errs, errors.New("hints.api_key must not be empty for the anthropic provider"))
	}
	if h.MaxTokens < 1 {
		errs = append(errs, fmt.Errorf("hints.max_tokens must be >= 1, got %d", h.MaxTokens))
	}
	if h.Timeout <= 0 {
		errs = append(errs, errors.New("hints.timeout must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path uses defaults
// and the environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with ADVENTURE_ prefix
	v.SetEnvPrefix("ADVENTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.content_dir", "content/halloween")
	v.SetDefault("game.history_limit", 100)
	v.SetDefault("game.script_instruction_limit", 0)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "adventure")
	v.SetDefault("database.password", "adventure")
	v.SetDefault("database.name", "adventure")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.snapshot_ttl", "720h")

	v.SetDefault("telnet.host", "0.0.0.0")
	v.SetDefault("telnet.port", 4000)
	v.SetDefault("telnet.read_timeout", "30m")
	v.SetDefault("telnet.write_timeout", "30s")
	v.SetDefault("telnet.wrap_width", 78)

	v.SetDefault("health.host", "127.0.0.1")
	v.SetDefault("health.port", 50051)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	v.SetDefault("hints.provider", HintsStatic)
	v.SetDefault("hints.model", "claude-3-5-haiku-latest")
	v.SetDefault("hints.max_tokens", 200)
	v.SetDefault("hints.timeout", "10s")
	// Registered so ADVENTURE_HINTS_API_KEY reaches Unmarshal.
	v.SetDefault("hints.api_key", "")
}
