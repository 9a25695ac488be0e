package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the calculator program. Each field can be set
// in a YAML config file, by environment variable, or by flag, in increasing
// order of priority.
type Config struct {
	// Format is the fmt verb used to print results.
	Format string `yaml:"format"`
	// Prompt is the interactive prompt for an expression.
	Prompt string `yaml:"prompt"`
	// History is the file holding interactive line history. Empty disables
	// saving history.
	History string `yaml:"history"`
	// LogLevel is the minimum level of log messages written to stderr.
	LogLevel string `yaml:"log_level"`
	// LogFile, if not empty, receives every log message as JSON.
	LogFile string `yaml:"log_file"`

	// envFile is the dotenv file that was loaded, if any.
	envFile string
}

// Environment variables overriding config file settings.
const (
	envFormat   = "CALC_FORMAT"
	envPrompt   = "CALC_PROMPT"
	envHistory  = "CALC_HISTORY"
	envLogLevel = "CALC_LOG_LEVEL"
	envLogFile  = "CALC_LOG_FILE"
)

func defaultConfig() Config {
	cfg := Config{
		Format:   "%g",
		Prompt:   "Enter an equation: ",
		LogLevel: "warn",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		cfg.History = filepath.Join(dir, "calc", "history")
	}
	return cfg
}

// loadConfig builds the configuration from defaults, the YAML file at path if
// it is not empty, and the environment. Variables in the dotenv file at
// envPath are added to the environment first. A missing dotenv file is an
// error only if required is true. loadConfig runs before logging is set up,
// so it reports what it loaded through the result instead of logging.
func loadConfig(path, envPath string, required bool) (*Config, error) {
	cfg := defaultConfig()
	if envPath != "" {
		err := godotenv.Load(envPath)
		switch {
		case err == nil:
			cfg.envFile = envPath
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("loading environment from %s: %w", envPath, err)
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		// An empty file decodes as io.EOF and leaves the defaults.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	for _, v := range []struct {
		name string
		dst  *string
	}{
		{envFormat, &cfg.Format},
		{envPrompt, &cfg.Prompt},
		{envHistory, &cfg.History},
		{envLogLevel, &cfg.LogLevel},
		{envLogFile, &cfg.LogFile},
	} {
		if s, ok := os.LookupEnv(v.name); ok {
			*v.dst = s
		}
	}
	return &cfg, nil
}

// validate checks that the format prints a number and the log level is known.
func (cfg *Config) validate() error {
	if s := fmt.Sprintf(cfg.Format, 1.5); strings.Contains(s, "%!") {
		return fmt.Errorf("format %q cannot print a number: %s", cfg.Format, s)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
