// Package config loads application configuration from, in order of
// precedence: command-line flags, WORTKARTE_-prefixed environment
// variables, an optional YAML config file, and built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	flag "github.com/spf13/pflag"
)

// Config is the full application configuration.
type Config struct {
	Listen  string `koanf:"listen" validate:"required"`
	DataDir string `koanf:"data_dir" validate:"required"`
	DBPath  string `koanf:"db_path" validate:"required"`

	// API keys for the external collaborators. Either may be empty, in
	// which case the corresponding feature is disabled in the UI.
	DeepLKey  string `koanf:"deepl_key"`
	OpenAIKey string `koanf:"openai_key"`

	Import ImportConfig `koanf:"import"`
}

// ImportConfig configures the optional startup deck import.
type ImportConfig struct {
	Dir             string `koanf:"dir"`
	Git             string `koanf:"git"`
	DefaultCategory string `koanf:"default_category" validate:"omitempty,oneof=Word Grammar Context"`
}

// Flags defines the command-line flag set. Call before Load and pass the
// parsed set in.
func Flags() *flag.FlagSet {
	f := flag.NewFlagSet("wortkarte", flag.ExitOnError)
	f.String("config", "", "Path to a YAML config file")
	f.String("listen", "", "HTTP listen address")
	f.String("data-dir", "", "Directory for the database and settings files")
	f.String("db-path", "", "Path to the SQLite database file")
	f.String("import.dir", "", "Deck directory to import at startup")
	f.String("import.git", "", "Deck git repository to import at startup")
	return f
}

// Load merges all configuration sources and validates the result.
func Load(f *flag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"listen":                  ":8484",
		"data_dir":                "data",
		"db_path":                 "data/wortkarte.db",
		"import.default_category": "Word",
	}
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path, _ := f.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// WORTKARTE_DEEPL_KEY -> deepl_key, WORTKARTE_IMPORT__DIR -> import.dir.
	err := k.Load(env.Provider("WORTKARTE_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "WORTKARTE_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.ProviderWithFlag(f, ".", k, flagToKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		var msgs []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}

	return &cfg, nil
}

// flagToKey maps flag names onto config keys: dashes become underscores
// within a section, dots separate sections. The "config" flag itself is not
// part of the Config struct.
func flagToKey(f *flag.Flag) (string, any) {
	if f.Name == "config" || !f.Changed {
		return "", nil
	}
	key := strings.ReplaceAll(f.Name, "-", "_")
	return key, f.Value.String()
}
