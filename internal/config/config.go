// Package config loads mdnotes settings from defaults, an optional YAML
// file and MDNOTES_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Version is the application version reported to the UI when the
// configuration does not override it.
const Version = "0.1.0"

const envPrefix = "MDNOTES"

// Config is the complete application configuration.
type Config struct {
	// DataDir holds the settings database and logs.
	DataDir string `mapstructure:"data_dir" validate:"required" yaml:"data_dir"`

	// NotesDir holds one markdown file per note.
	NotesDir string `mapstructure:"notes_dir" validate:"required" yaml:"notes_dir"`

	// DBPath is the sqlite settings database.
	DBPath string `mapstructure:"db_path" validate:"required" yaml:"db_path"`

	// Dev enables development behaviour: debug events, text console
	// output and stack traces in failure details.
	Dev bool `mapstructure:"dev" yaml:"dev"`

	Version string `mapstructure:"version" validate:"required" yaml:"version"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	Client ClientConfig `mapstructure:"client" yaml:"client"`
}

// LogConfig configures the error handler sinks.
type LogConfig struct {
	Console bool `mapstructure:"console" yaml:"console"`

	// GlobalHandlers routes the standard log package through the handler.
	GlobalHandlers bool `mapstructure:"global_handlers" yaml:"global_handlers"`

	File FileLogConfig `mapstructure:"file" yaml:"file"`
}

// FileLogConfig configures the JSON-lines log file.
type FileLogConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	Dir string `mapstructure:"dir" validate:"required_if=Enabled true" yaml:"dir"`

	// Rotate is a cron expression; empty disables rotation.
	Rotate string `mapstructure:"rotate" yaml:"rotate"`
}

// ClientConfig configures the UI-side bridge adapter.
type ClientConfig struct {
	// Timeout bounds each bridge call; zero waits indefinitely.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0" yaml:"timeout"`
}

// MarshalYAML writes the timeout as a duration string.
func (c ClientConfig) MarshalYAML() (interface{}, error) {
	return map[string]string{"timeout": c.Timeout.String()}, nil
}

// LogPath returns the host log file path.
func (c *Config) LogPath(name string) string {
	return filepath.Join(c.Log.File.Dir, name+".log")
}

// Load reads configuration. An empty configPath looks for config.yaml in
// the default config directory; a missing file is not an error there.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)
	setDefaults(v)

	if err := readConfigFile(v, configPath != ""); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks struct constraints.
func Validate(cfg *Config) error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}

// ApplyDefaults fills paths derived from DataDir that were left empty.
func ApplyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.NotesDir == "" {
		cfg.NotesDir = filepath.Join(cfg.DataDir, "notes")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "mdnotes.db")
	}
	if cfg.Log.File.Dir == "" {
		cfg.Log.File.Dir = filepath.Join(cfg.DataDir, "logs")
	}
	if cfg.Version == "" {
		cfg.Version = Version
	}
}

// Save writes cfg as YAML to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("notes_dir", "")
	v.SetDefault("db_path", "")
	v.SetDefault("dev", false)
	v.SetDefault("version", Version)
	v.SetDefault("log.console", true)
	v.SetDefault("log.global_handlers", true)
	v.SetDefault("log.file.enabled", true)
	v.SetDefault("log.file.dir", "")
	v.SetDefault("log.file.rotate", "@daily")
	v.SetDefault("client.timeout", "30s")
}

func readConfigFile(v *viper.Viper, explicit bool) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
	)
}

func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			if v == "" {
				return time.Duration(0), nil
			}
			return time.ParseDuration(v)
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}

func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mdnotes")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "mdnotes")
}

func defaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "mdnotes")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "mdnotes")
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
