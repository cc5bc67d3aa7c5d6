package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment variables that override configuration,
// e.g. NOTARIUM_LOG_LEVEL.
const EnvPrefix = "NOTARIUM_"

// ConfigFile is the configuration file looked up in the project directory
// when none is given explicitly.
const ConfigFile = "notarium.yaml"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectDir string        `koanf:"project_dir" validate:"required"`
	LogLevel   string        `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat  string        `koanf:"log_format" validate:"oneof=text json"`
	Debounce   time.Duration `koanf:"debounce" validate:"gte=0"`

	// Watch keeps recompiling on changes instead of compiling once.
	Watch bool `koanf:"-"`
}

// DefaultConfig returns the configuration used for every value that no
// source sets.
func DefaultConfig() Config {
	return Config{
		ProjectDir: ".",
		LogLevel:   "info",
		LogFormat:  "text",
		Debounce:   200 * time.Millisecond,
	}
}

var validate = validator.New()

// LoadConfig layers the configuration sources: defaults, then the YAML file
// at path (skipped when path is empty), then NOTARIUM_* environment
// variables, then overrides keyed by koanf key.
func LoadConfig(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", key, err)
		}
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validate.Struct(&cfg); err != nil {
		return nil, configError(err)
	}
	return &cfg, nil
}

// configError turns validator failures into one readable message.
func configError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("invalid %s %q: must be one of %s", fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("invalid %s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// FindConfigFile returns the project's config file, or "" when it has none.
func FindConfigFile(projectDir string) string {
	path := filepath.Join(projectDir, ConfigFile)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}
