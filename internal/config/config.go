package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/spf13/viper"
)

const EnvPrefix = "STICKYNOTES"

type RemindersConfig struct {
	Enabled              bool `mapstructure:"enabled"`
	DesktopNotifications bool `mapstructure:"desktop_notifications"`
	SchedulerBuffer      int  `mapstructure:"scheduler_buffer"`
}

// DefaultsConfig mirrors the "Default Sticky" settings applied to new notes.
type DefaultsConfig struct {
	Color string `mapstructure:"color"`
	Emoji string `mapstructure:"emoji"`
}

type StorageConfig struct {
	Backend     string        `mapstructure:"backend"`
	DSN         string        `mapstructure:"dsn"`
	RedisPrefix string        `mapstructure:"redis_prefix"`
	PingTimeout time.Duration `mapstructure:"ping_timeout"`
}

type LogConfig struct {
	File    string `mapstructure:"file"`
	Verbose bool   `mapstructure:"verbose"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DispatchConfig struct {
	TopicURL        string        `mapstructure:"topic_url"`
	MaxWorkers      int           `mapstructure:"max_workers"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type UIConfig struct {
	StartGallery string `mapstructure:"start_gallery"`
	SeedSamples  bool   `mapstructure:"seed_samples"`
}

type Config struct {
	Reminders RemindersConfig `mapstructure:"reminders"`
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Dispatch  DispatchConfig  `mapstructure:"dispatch"`
	UI        UIConfig        `mapstructure:"ui"`
}

var defaults = map[string]any{
	"reminders.enabled":               true,
	"reminders.desktop_notifications": false,
	"reminders.scheduler_buffer":      64,
	"defaults.color":                  "yellow",
	"defaults.emoji":                  "😊",
	"storage.backend":                 "memory",
	"storage.dsn":                     "",
	"storage.redis_prefix":            "stickynotes",
	"storage.ping_timeout":            "2s",
	"log.file":                        "stickynotes.log",
	"log.verbose":                     false,
	"http.port":                       "8080",
	"http.read_timeout":               "5s",
	"http.write_timeout":              "10s",
	"http.idle_timeout":               "120s",
	"http.shutdown_timeout":           "20s",
	"dispatch.topic_url":              "mem://reminders",
	"dispatch.max_workers":            4,
	"dispatch.shutdown_timeout":       "5s",
	"ui.start_gallery":                "general",
	"ui.seed_samples":                 true,
}

// DefaultPath returns ~/.config/stickynotes/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "stickynotes", "config.yaml")
}

func Default() Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Sprintf("config: invalid built-in defaults: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path when it exists and applies
// STICKYNOTES_* environment overrides on top, e.g. STICKYNOTES_HTTP_PORT.
func Load(path string) (Config, error) {
	v := newViper()
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}
	cfg, err := decode(v)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if _, err := model.ParseColor(c.Defaults.Color); err != nil {
		return fmt.Errorf("config: defaults.color: %w", err)
	}
	if _, err := model.ParseGalleryKind(c.UI.StartGallery); err != nil {
		return fmt.Errorf("config: ui.start_gallery: %w", err)
	}
	if c.Reminders.SchedulerBuffer <= 0 {
		return errors.New("config: reminders.scheduler_buffer must be positive")
	}
	if c.Dispatch.MaxWorkers <= 0 {
		return errors.New("config: dispatch.max_workers must be positive")
	}
	if strings.TrimSpace(c.HTTP.Port) == "" {
		return errors.New("config: http.port is required")
	}
	return nil
}
