package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// ConfigFileEnv names an optional YAML file loaded before the environment.
// Environment variables win over values from the file.
const ConfigFileEnv = "GATEWAY_CONFIG_FILE"

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Stripe   StripeConfig   `koanf:"stripe"`
	Retry    RetryConfig    `koanf:"retry"`
	Logger   LoggerConfig   `koanf:"logger"`
	Worker   WorkerConfig   `koanf:"worker"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxRetries int32         `koanf:"max_retries"`
}

// WorkerConfig drives the call log pruner. Entries older than Retention are deleted
// BatchSize rows at a time every Interval.
type WorkerConfig struct {
	Interval  time.Duration `koanf:"interval" validate:"required"`
	BatchSize int           `koanf:"batch_size" validate:"required,gt=0"`
	Retention time.Duration `koanf:"retention" validate:"required"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`
}

// SettingsError carries the gateway settings that failed validation, keyed by setting name.
type SettingsError struct {
	Fields map[string]string
}

func (e *SettingsError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid gateway settings: " + strings.Join(msgs, "; ")
}

func bootstrapLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// load reads the optional config file and then the GATEWAY_ environment into k.
func load(logger *slog.Logger) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.Error("failed to load config file", "path", path, "error", err)
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}
	return k, nil
}

// LoadEncryptionKey reads only stripe.encryption_key, for tooling that runs before
// the rest of the configuration is valid.
func LoadEncryptionKey() (string, error) {
	k, err := load(bootstrapLogger())
	if err != nil {
		return "", err
	}
	key := k.String("stripe.encryption_key")
	if key == "" {
		return "", errors.New("stripe.encryption_key is not set")
	}
	return key, nil
}

func LoadConfig() (*Config, error) {
	logger := bootstrapLogger()

	k, err := load(logger)
	if err != nil {
		return nil, err
	}

	mainConfig := &Config{
		Stripe: StripeConfig{
			BaseURL:     DefaultStripeBaseURL,
			ConnTimeout: 30 * time.Second,
		},
		Retry: RetryConfig{
			BaseDelay:  500 * time.Millisecond,
			MaxRetries: 3,
		},
		Worker: WorkerConfig{
			Interval:  time.Hour,
			BatchSize: 500,
			Retention: 30 * 24 * time.Hour,
		},
	}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if fields := mainConfig.Stripe.ValidateSettings(); len(fields) > 0 {
		settingsErr := &SettingsError{Fields: fields}
		logger.Error("gateway settings validation failed", "error", settingsErr)
		return nil, settingsErr
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if _, err := mainConfig.Stripe.SelectedKey(); err != nil {
		logger.Error("could not read selected api key", "error", err)
		return nil, errors.Join(errors.New("stripe api key"), err)
	}

	if err := mainConfig.Stripe.CheckKeyStorage(); err != nil {
		logger.Error("api key storage rejected", "error", err)
		return nil, err
	}
	if mainConfig.Stripe.KeyIsPlaintext() {
		logger.Warn("selected stripe api key is stored in plaintext, seal it with `gateway encrypt-key`",
			"environment", mainConfig.Stripe.Environment,
		)
	}

	return mainConfig, nil
}
