// Package config handles application configuration management.
//
// Settings come from three layers: built-in defaults, an optional
// wavsplit.yaml in the application root, and WAVSPLIT_* environment
// variables. Later layers win. The GUI's own state (last-used directories)
// is not configuration and lives in internal/state.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SettingsFilename is the optional YAML settings file in the application root.
const SettingsFilename = "wavsplit.yaml"

// Config holds all application configuration.
type Config struct {
	Transcoder TranscoderConfig `yaml:"transcoder"`
	Log        LogConfig        `yaml:"log"`

	// VerifyOutputs re-opens every exported channel file and checks that
	// rate, bit depth and channel count match the source.
	VerifyOutputs bool `yaml:"verify_outputs"`

	// AppRoot is the directory holding config.json, app.log and the optional
	// bundled ffmpeg/ directory. Defaults to the executable's directory.
	AppRoot string `yaml:"app_root"`
}

// TranscoderConfig holds FFmpeg/FFprobe binary locations.
type TranscoderConfig struct {
	// FFmpegPath and FFprobePath bypass binary discovery when set.
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level LogLevel `yaml:"level"`
	// File receives a copy of every log line. Empty disables the file sink.
	File string `yaml:"file"`
}

// Load reads configuration from the optional settings file and environment
// variables, applying defaults for everything left unset.
func Load() (*Config, error) {
	root := getEnv("WAVSPLIT_APP_ROOT", applicationRoot())

	cfg := &Config{
		Log: LogConfig{
			Level: LogLevelInfo,
			File:  filepath.Join(root, "app.log"),
		},
		VerifyOutputs: true,
		AppRoot:       root,
	}

	if err := loadSettingsFile(filepath.Join(root, SettingsFilename), cfg); err != nil {
		return nil, err
	}

	cfg.Transcoder.FFmpegPath = getEnv("WAVSPLIT_FFMPEG_PATH", cfg.Transcoder.FFmpegPath)
	cfg.Transcoder.FFprobePath = getEnv("WAVSPLIT_FFPROBE_PATH", cfg.Transcoder.FFprobePath)
	cfg.Log.Level = LogLevel(getEnv("WAVSPLIT_LOG_LEVEL", string(cfg.Log.Level)))
	cfg.Log.File = getEnv("WAVSPLIT_LOG_FILE", cfg.Log.File)
	cfg.AppRoot = getEnv("WAVSPLIT_APP_ROOT", cfg.AppRoot)

	if v := os.Getenv("WAVSPLIT_VERIFY_OUTPUTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid WAVSPLIT_VERIFY_OUTPUTS value %q: %w", v, err)
		}
		cfg.VerifyOutputs = b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !c.Log.Level.IsValid() {
		return fmt.Errorf("invalid log level %q (expected %q or %q)", c.Log.Level, LogLevelDebug, LogLevelInfo)
	}
	if c.AppRoot == "" {
		return errors.New("application root is empty")
	}
	return nil
}

// StatePath returns the location of the persisted GUI state file.
func (c *Config) StatePath() string {
	return filepath.Join(c.AppRoot, "config.json")
}

// loadSettingsFile decodes the YAML settings file over cfg. A missing file is
// not an error; an unknown key or malformed YAML is.
func loadSettingsFile(path string, cfg *Config) error {
	f, err := os.Open(path) // #nosec G304 - path is derived from the application root
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open settings file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	return nil
}

// applicationRoot returns the directory of the running executable, falling
// back to the working directory.
func applicationRoot() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// getEnv returns the value of the environment variable key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
