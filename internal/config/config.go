package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Carrier  CarrierConfig  `koanf:"carrier"`
	Labels   LabelConfig    `koanf:"labels"`
	Auth     AuthConfig     `koanf:"auth"`
	Logger   LoggerConfig   `koanf:"logger"`
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

// CarrierConfig holds everything needed to talk to the carrier API.
// OriginPostalCode/OriginCountryCode are the warehouse defaults used for
// rate quotes, which carry no shipper reference of their own.
type CarrierConfig struct {
	BaseURL           string        `koanf:"base_url" validate:"required"`
	ConnTimeout       time.Duration `koanf:"conn_timeout" validate:"required"`
	TokenSafetyMargin time.Duration `koanf:"token_safety_margin"`
	PreferredCurrency string        `koanf:"preferred_currency" validate:"required"`
	OriginPostalCode  string        `koanf:"origin_postal_code" validate:"required"`
	OriginCountryCode string        `koanf:"origin_country_code" validate:"required"`
}

type LabelConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

type AuthConfig struct {
	ServiceToken string `koanf:"service_token" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

func (l LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(l.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

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

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if mainConfig.Carrier.TokenSafetyMargin == 0 {
		mainConfig.Carrier.TokenSafetyMargin = 30 * time.Second
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
