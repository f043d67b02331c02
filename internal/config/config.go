// Package config loads flashquote settings from flags, a YAML file and the
// environment.
//
// Precedence, lowest first: flag defaults, the YAML file named by --config,
// FLASHQUOTE_* environment variables, flags set on the command line.
// Environment names map to keys by dropping the prefix, lowercasing and
// turning "_" into ".", so FLASHQUOTE_SERVER_ADDR sets server.addr.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "FLASHQUOTE_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Deck    DeckConfig    `koanf:"deck"`
	Journal JournalConfig `koanf:"journal"`
}

type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required,hostname_port"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
}

// DeckConfig selects the seed deck. Both fields empty means the built-in deck.
type DeckConfig struct {
	Path     string `koanf:"path"`
	Repo     string `koanf:"repo"`
	Checkout string `koanf:"checkout" validate:"required_with=Repo"`
}

// JournalConfig enables the sqlite activity journal when DSN is set.
type JournalConfig struct {
	DSN string `koanf:"dsn"`
}

// Flags returns the flag set understood by Load.
func Flags() *pflag.FlagSet {
	f := pflag.NewFlagSet("flashquote", pflag.ContinueOnError)
	f.String("config", "", "Path to a YAML config file")
	f.String("server.addr", ":8080", "Address the web UI listens on")
	f.String("log.level", "info", "Log level: debug, info, warn or error")
	f.String("deck.path", "", "Markdown file or directory with seed cards")
	f.String("deck.repo", "", "Git repository holding seed cards")
	f.String("deck.checkout", "repos", "Directory for git checkouts")
	f.String("journal.dsn", "", "SQLite DSN for the activity journal (disabled when empty)")
	return f
}

// Load parses args and merges every configuration source into a validated Config.
func Load(args []string) (*Config, error) {
	f := Flags()
	if err := f.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	k := koanf.New(".")

	if path, _ := f.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Flags last: posflag only applies a default when no earlier source set
	// the key, while flags given on the command line always win.
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
