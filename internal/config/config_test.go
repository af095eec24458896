package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

// Feature: trail, Property 7: Saved config loads back unchanged
func TestConfigSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rapid.Check(t, func(t *rapid.T) {
		cfg := &Config{
			IdleTimeoutMinutes:       rapid.IntRange(0, 1440).Draw(t, "idle"),
			EnableProjectIntegration: rapid.Bool().Draw(t, "projects"),
			AutoCdOnResume:           rapid.Bool().Draw(t, "autocd"),
			IgnoreCommands:           rapid.SliceOf(rapid.StringMatching(`[a-z *]{1,10}`)).Draw(t, "ignore"),
			Theme:                    rapid.SampledFrom([]string{"latte", "frappe", "macchiato", "mocha"}).Draw(t, "theme"),
		}
		path := filepath.Join(dir, "config.json")
		if err := Save(path, cfg); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got.IdleTimeoutMinutes != cfg.IdleTimeoutMinutes ||
			got.EnableProjectIntegration != cfg.EnableProjectIntegration ||
			got.AutoCdOnResume != cfg.AutoCdOnResume ||
			got.Theme != cfg.Theme {
			t.Fatalf("got %+v, want %+v", got, cfg)
		}
		if len(got.IgnoreCommands) != len(cfg.IgnoreCommands) {
			t.Fatalf("ignore_commands: got %v, want %v", got.IgnoreCommands, cfg.IgnoreCommands)
		}
		for i := range cfg.IgnoreCommands {
			if got.IgnoreCommands[i] != cfg.IgnoreCommands[i] {
				t.Fatalf("ignore_commands[%d]: got %q, want %q", i, got.IgnoreCommands[i], cfg.IgnoreCommands[i])
			}
		}
	})
}

func TestDefaultsValues(t *testing.T) {
	d := Defaults()
	if d.IdleTimeoutMinutes != 10 {
		t.Errorf("IdleTimeoutMinutes: want 10, got %d", d.IdleTimeoutMinutes)
	}
	if !d.EnableProjectIntegration {
		t.Error("EnableProjectIntegration: want true")
	}
	if d.AutoCdOnResume {
		t.Error("AutoCdOnResume: want false")
	}
	if d.IgnoreCommands == nil || len(d.IgnoreCommands) != 0 {
		t.Errorf("IgnoreCommands: want empty slice, got %v", d.IgnoreCommands)
	}
	if d.Theme != "mocha" {
		t.Errorf("Theme: want mocha, got %q", d.Theme)
	}
}

func TestLoadMissingFilePersistsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail", "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IdleTimeoutMinutes != Defaults().IdleTimeoutMinutes {
		t.Errorf("want defaults, got %+v", cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("defaults were not written: %v", err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("written config is not JSON: %v", err)
	}
	if onDisk["idle_timeout_minutes"] != float64(10) {
		t.Errorf("idle_timeout_minutes on disk = %v", onDisk["idle_timeout_minutes"])
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"idle_timeout_minutes": 30}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IdleTimeoutMinutes != 30 {
		t.Errorf("IdleTimeoutMinutes = %d", cfg.IdleTimeoutMinutes)
	}
	if !cfg.EnableProjectIntegration || cfg.Theme != "mocha" {
		t.Errorf("missing keys lost their defaults: %+v", cfg)
	}
	if cfg.IdleTimeout().Minutes() != 30 {
		t.Errorf("IdleTimeout = %v", cfg.IdleTimeout())
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{invalid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for invalid JSON, got nil")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr != nil && parseErr.Path != path {
		t.Errorf("error should name the file, got %q", parseErr.Path)
	}
}

func TestPathsHonourXDG(t *testing.T) {
	data := t.TempDir()
	conf := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("XDG_CONFIG_HOME", conf)

	if p, _ := TimelinePath(); p != filepath.Join(data, "trail", "timeline.jsonl") {
		t.Errorf("TimelinePath = %q", p)
	}
	if p, _ := StatePath(); p != filepath.Join(data, "trail", "state.json") {
		t.Errorf("StatePath = %q", p)
	}
	if p, _ := Path(); p != filepath.Join(conf, "trail", "config.json") {
		t.Errorf("Path = %q", p)
	}
}

func TestPathsFallBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	if p, _ := TimelinePath(); p != filepath.Join(home, ".local", "share", "trail", "timeline.jsonl") {
		t.Errorf("TimelinePath = %q", p)
	}
	if p, _ := Path(); p != filepath.Join(home, ".config", "trail", "config.json") {
		t.Errorf("Path = %q", p)
	}
}

func TestIgnoreMatcher(t *testing.T) {
	m, err := NewIgnoreMatcher([]string{"ls", "cd *", "*secret*"})
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"ls":                  true,
		"  ls  ":              true,
		"ls -la":              false,
		"cd /tmp":             true,
		"export secret=1":     true,
		"git status":          false,
		"cat secret-file.txt": true,
	}
	for cmd, want := range cases {
		if got := m.Match(cmd); got != want {
			t.Errorf("Match(%q) = %v, want %v", cmd, got, want)
		}
	}

	var nilMatcher *IgnoreMatcher
	if nilMatcher.Match("ls") {
		t.Error("nil matcher should match nothing")
	}
}
