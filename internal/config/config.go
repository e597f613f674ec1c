// Package config resolves runtime settings from defaults, an optional config
// file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rshade/ec2-instance-browser/internal/logging"
)

// EnvPrefix is prepended to environment variable names, e.g. EC2_BROWSER_DATASET.
const EnvPrefix = "EC2_BROWSER"

// Keys shared by flags, environment and config file.
const (
	KeyConfigFile = "config"
	KeyDataset    = "dataset"
	KeyLogLevel   = "log-level"
	KeyLogFormat  = "log-format"
	KeyOutput     = "output"
	KeyTimeout    = "timeout"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Log formats.
const (
	LogFormatJSON   = logging.FormatJSON
	LogFormatPretty = logging.FormatPretty
)

// DatasetFileName is the dataset file expected in the assets folder.
const DatasetFileName = "data.db"

// Config holds the resolved settings.
type Config struct {
	DatasetPath string
	LogLevel    string
	LogFormat   string
	Output      string
	Timeout     time.Duration
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// DefaultDatasetPath returns assets/data.db next to the running executable,
// falling back to the working directory when the executable path is unknown.
func DefaultDatasetPath() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("assets", DatasetFileName)
	}
	return filepath.Join(filepath.Dir(exe), "assets", DatasetFileName)
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDataset, DefaultDatasetPath())
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, LogFormatPretty)
	v.SetDefault(KeyOutput, OutputTable)
	v.SetDefault(KeyTimeout, time.Duration(0))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file named by the "config" key, if any, and returns
// the validated settings. The dataset path is resolved once here; callers
// pass the result to everything that needs it.
func Load(v *viper.Viper) (Config, error) {
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		DatasetPath: v.GetString(KeyDataset),
		LogLevel:    strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:   strings.ToLower(v.GetString(KeyLogFormat)),
		Output:      strings.ToLower(v.GetString(KeyOutput)),
		Timeout:     v.GetDuration(KeyTimeout),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("%w: dataset path is empty", ErrInvalid)
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: unknown output format %q (want table, json or yaml)", ErrInvalid, c.Output)
	}
	switch c.LogFormat {
	case LogFormatJSON, LogFormatPretty:
	default:
		return fmt.Errorf("%w: unknown log format %q (want json or pretty)", ErrInvalid, c.LogFormat)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalid)
	}
	return nil
}
