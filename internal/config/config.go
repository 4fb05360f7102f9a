// Package config loads picker settings from defaults, an optional config
// file, IMAGE_PICKER_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-picker/internal/imaging"
	"github.com/ironsheep/image-picker/internal/picker"
)

// EnvPrefix prefixes every environment variable the picker reads.
const EnvPrefix = "IMAGE_PICKER"

// Keys shared by viper, the config file and the CLI flags.
const (
	KeySize          = "size"
	KeyAccept        = "accept"
	KeyMaxFileSizeMB = "max_file_size_mb"
	KeyAnchor        = "anchor"
	KeyFilter        = "filter"
	KeyTimeout       = "timeout"
	KeyTitle         = "title"
	KeyLogLevel      = "log_level"
)

// Config holds resolved picker settings.
type Config struct {
	Size          int           `mapstructure:"size" validate:"gte=0,lte=4096"`
	Accept        []string      `mapstructure:"accept" validate:"required,min=1,dive,required"`
	MaxFileSizeMB float64       `mapstructure:"max_file_size_mb" validate:"gt=0"`
	Anchor        string        `mapstructure:"anchor" validate:"omitempty,oneof=top-left center"`
	Filter        string        `mapstructure:"filter" validate:"omitempty,oneof=nearest linear catmullrom lanczos"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Title         string        `mapstructure:"title"`
	LogLevel      string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySize, picker.DefaultSize)
	v.SetDefault(KeyAccept, picker.DefaultAccept())
	v.SetDefault(KeyMaxFileSizeMB, picker.DefaultMaxFileSizeMB)
	v.SetDefault(KeyAnchor, string(imaging.AnchorTopLeft))
	v.SetDefault(KeyFilter, imaging.FilterLinear)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyTitle, "Choose an image")
	v.SetDefault(KeyLogLevel, "info")
}

// Load resolves settings from v. When configFile is empty, image-picker.yaml
// (or .json/.toml) is looked up in the working directory and
// $HOME/.config/image-picker; a missing file is not an error. Anchor and
// filter names are matched case-insensitively.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("image-picker")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/image-picker")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Accept = splitAccept(cfg.Accept)
	if anchor, err := imaging.ParseAnchor(cfg.Anchor); err == nil {
		cfg.Anchor = string(anchor)
	}
	cfg.Filter = strings.ToLower(strings.TrimSpace(cfg.Filter))

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Request converts the settings into a picker request.
func (c *Config) Request() picker.Request {
	return picker.Request{
		Size:          c.Size,
		Accept:        append([]string(nil), c.Accept...),
		MaxFileSizeMB: c.MaxFileSizeMB,
		Anchor:        imaging.Anchor(c.Anchor),
		Filter:        c.Filter,
	}
}

// Debug reports whether debug logging was requested.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// splitAccept flattens comma-separated entries and trims whitespace.
func splitAccept(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, mt := range strings.Split(entry, ",") {
			if mt = strings.TrimSpace(mt); mt != "" {
				out = append(out, mt)
			}
		}
	}
	return out
}
