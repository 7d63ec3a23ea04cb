package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orrery.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesAndFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
debug = true

[window]
title = "moons"

[camera]
follow_mode = "offset"
initial_target = "Moon"

[scene]
watch = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Debug || cfg.Window.Title != "moons" || cfg.Camera.FollowMode != "offset" || !cfg.Scene.Watch {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Window.Width != 1280 || cfg.Scene.Prefab != "solar_system.yaml" || cfg.Camera.DragSpeed != 0.005 {
		t.Fatalf("defaults not filled: %+v", cfg)
	}
	if cfg.Camera.InitialTarget != "Moon" {
		t.Fatalf("unexpected initial target %q", cfg.Camera.InitialTarget)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad_toml", "[window\n", "config parse failed"},
		{"bad_mode", "[camera]\nfollow_mode = \"chase\"\n", "follow_mode"},
		{"bad_prefab", "[scene]\nprefab = \"scene.json\"\n", "yaml"},
		{"negative_speed", "[camera]\ndrag_speed = -1.0\n", "speeds"},
		{"bad_log_level", "[log]\nlevel = \"loud\"\n", "log.level"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.body))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

func TestLogLevelLeftUnsetByDefault(t *testing.T) {
	if Default().Log.Level != "" {
		t.Fatalf("default log level must be empty so the environment applies, got %q", Default().Log.Level)
	}
	cfg, err := Load(writeConfig(t, "debug = true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "" {
		t.Fatalf("absent [log] section should leave the level empty, got %q", cfg.Log.Level)
	}
	cfg, err = Load(writeConfig(t, "[log]\nlevel = \"warn\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected warn, got %q", cfg.Log.Level)
	}
}
