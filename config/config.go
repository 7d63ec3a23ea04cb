package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/milk9111/orrery/logging"
	"github.com/pelletier/go-toml/v2"
)

// Config is the runtime configuration read from orrery.toml.
type Config struct {
	Window WindowConfig `toml:"window"`
	Scene  SceneConfig  `toml:"scene"`
	Camera CameraConfig `toml:"camera"`
	Log    LogConfig    `toml:"log"`
	Debug  bool         `toml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

type SceneConfig struct {
	// Prefab is the scene file name under prefabs/.
	Prefab string `toml:"prefab"`
	// Watch reloads the scene when its prefab changes on disk.
	Watch bool `toml:"watch"`
}

type CameraConfig struct {
	// FollowMode overrides the scene's follow mode when set ("camera" or
	// "offset").
	FollowMode string `toml:"follow_mode"`
	// InitialTarget names a scene target to start on instead of the
	// scene's follow target.
	InitialTarget string `toml:"initial_target"`
	// DragSpeed is radians of orbit per dragged pixel.
	DragSpeed float64 `toml:"drag_speed"`
	// KeySpeed is radians of orbit per frame while an arrow key is held.
	KeySpeed float64 `toml:"key_speed"`
}

type LogConfig struct {
	// Level overrides the logger level when set. Left empty, the level from
	// ORRERY_LOG_LEVEL (or info) stays in effect.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "orrery",
			Width:     1280,
			Height:    720,
			Resizable: true,
		},
		Scene: SceneConfig{
			Prefab: "solar_system.yaml",
		},
		Camera: CameraConfig{
			DragSpeed: 0.005,
			KeySpeed:  0.02,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Window.Title == "" {
		cfg.Window.Title = def.Window.Title
	}
	if cfg.Window.Width == 0 {
		cfg.Window.Width = def.Window.Width
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = def.Window.Height
	}
	if cfg.Scene.Prefab == "" {
		cfg.Scene.Prefab = def.Scene.Prefab
	}
	if cfg.Camera.DragSpeed == 0 {
		cfg.Camera.DragSpeed = def.Camera.DragSpeed
	}
	if cfg.Camera.KeySpeed == 0 {
		cfg.Camera.KeySpeed = def.Camera.KeySpeed
	}
}

// Validate checks ranges and enumerations.
func Validate(cfg Config) error {
	if cfg.Window.Width < 0 || cfg.Window.Height < 0 {
		return fmt.Errorf("window size %dx%d must not be negative", cfg.Window.Width, cfg.Window.Height)
	}
	switch strings.ToLower(cfg.Camera.FollowMode) {
	case "", "camera", "offset":
	default:
		return fmt.Errorf("unknown camera.follow_mode %q", cfg.Camera.FollowMode)
	}
	if cfg.Camera.DragSpeed < 0 || cfg.Camera.KeySpeed < 0 {
		return fmt.Errorf("camera speeds must not be negative")
	}
	if _, ok := logging.ParseLevel(cfg.Log.Level); cfg.Log.Level != "" && !ok {
		return fmt.Errorf("unknown log.level %q", cfg.Log.Level)
	}
	if !strings.HasSuffix(cfg.Scene.Prefab, ".yaml") && !strings.HasSuffix(cfg.Scene.Prefab, ".yml") {
		return fmt.Errorf("scene.prefab %q must be a yaml file", cfg.Scene.Prefab)
	}
	return nil
}
