package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides, e.g. TODO_DB_PATH.
const EnvPrefix = "TODO_"

type Config struct {
	DB  DBConfig  `koanf:"db"`
	UI  UIConfig  `koanf:"ui"`
	Log LogConfig `koanf:"log"`
}

type DBConfig struct {
	Path string `koanf:"path"` // SQLite file (default: ~/.todo/tasks.db)
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
	Markdown      bool `koanf:"markdown"`  // Render task descriptions as markdown in /show
	WordWrap      int  `koanf:"word_wrap"` // Wrap width for rendered descriptions
}

type LogConfig struct {
	Level      string `koanf:"level"` // debug, info, warn, error
	File       string `koanf:"file"`  // Empty means stderr
	Timestamps bool   `koanf:"timestamps"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = ExpandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	// TODO_DB_PATH -> db.path, TODO_UI_WORD_WRAP -> ui.word_wrap
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DB.Path = ExpandPath(cfg.DB.Path)
	cfg.Log.File = ExpandPath(cfg.Log.File)

	return &cfg, nil
}

// envKey maps TODO_SECTION_SOME_KEY to section.some_key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + rest
}

func (c *Config) Validate() error {
	if c.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q (supported: debug, info, warn, error)", c.Log.Level)
	}

	if c.UI.WordWrap <= 0 {
		return fmt.Errorf("ui.word_wrap must be positive")
	}

	return nil
}

// EnsureDBDir creates the directory holding the database file.
func (c *Config) EnsureDBDir() error {
	dir := filepath.Dir(c.DB.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
