package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if want := filepath.Join(home, ".todo", "tasks.db"); cfg.DB.Path != want {
		t.Errorf("DB.Path = %q, want %q", cfg.DB.Path, want)
	}
	if !cfg.UI.ColoredOutput || !cfg.UI.Markdown {
		t.Errorf("expected colored output and markdown on by default: %+v", cfg.UI)
	}
	if cfg.UI.WordWrap != 80 {
		t.Errorf("WordWrap = %d, want 80", cfg.UI.WordWrap)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `db:
  path: /tmp/from-file.db
ui:
  colored_output: false
  word_wrap: 100
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TODO_DB_PATH", "/tmp/from-env.db")
	t.Setenv("TODO_UI_WORD_WRAP", "60")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DB.Path != "/tmp/from-env.db" {
		t.Errorf("env should override file: DB.Path = %q", cfg.DB.Path)
	}
	if cfg.UI.WordWrap != 60 {
		t.Errorf("env should override file: WordWrap = %d", cfg.UI.WordWrap)
	}
	if cfg.UI.ColoredOutput {
		t.Error("file should override default colored_output")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("Load with missing file failed: %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("db: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to load config file") {
		t.Fatalf("expected file load error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		DB:  DBConfig{Path: "/tmp/x.db"},
		UI:  UIConfig{WordWrap: 80},
		Log: LogConfig{Level: "info"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty db path", func(c *Config) { c.DB.Path = "" }, "db.path"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"zero wrap", func(c *Config) { c.UI.WordWrap = 0 }, "word_wrap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"TODO_DB_PATH":           "db.path",
		"TODO_UI_COLORED_OUTPUT": "ui.colored_output",
		"TODO_LOG_LEVEL":         "log.level",
		"TODO_VERBOSE":           "verbose",
	}
	for in, want := range cases {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnsureDBDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := Config{DB: DBConfig{Path: filepath.Join(dir, "tasks.db")}}

	if err := cfg.EnsureDBDir(); err != nil {
		t.Fatalf("EnsureDBDir failed: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory %s to exist: %v", dir, err)
	}
}
