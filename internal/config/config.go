// Package config loads settings from defaults, an optional config file, a
// .env file, SHEETQR_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sheetqr/sheetqr-go/pkg/qrcode"
	"github.com/sheetqr/sheetqr-go/pkg/sheetqr"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SHEETQR"

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Extract ExtractConfig `mapstructure:"extract"`
	QRCode  QRCodeConfig  `mapstructure:"qrcode"`
}

// ServerConfig holds the command bridge listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// ExtractConfig mirrors sheetqr.Options.
type ExtractConfig struct {
	Workers    int    `mapstructure:"workers" validate:"gte=0"`
	RawValues  bool   `mapstructure:"raw_values"`
	CSVCharset string `mapstructure:"csv_charset"`
}

// QRCodeConfig holds QR rendering settings.
type QRCodeConfig struct {
	Size int `mapstructure:"size" validate:"gt=0"`
}

// SetDefaults registers every key so that environment variables can
// override keys absent from any config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:1420")
	v.SetDefault("log.level", "info")
	v.SetDefault("extract.workers", 0)
	v.SetDefault("extract.raw_values", false)
	v.SetDefault("extract.csv_charset", "")
	v.SetDefault("qrcode.size", qrcode.DefaultSize)
}

// Load reads configuration into a Config. configFile may be empty.
func Load(v *viper.Viper, configFile string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ExtractOptions converts the extract section to library options.
func (c Config) ExtractOptions() sheetqr.Options {
	return sheetqr.Options{
		Workers:    c.Extract.Workers,
		RawValues:  c.Extract.RawValues,
		CSVCharset: c.Extract.CSVCharset,
	}
}
