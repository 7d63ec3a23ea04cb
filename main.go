package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/orrery/config"
	"github.com/milk9111/orrery/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "orrery.toml", "path to the TOML config file")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelFlag := flag.String("level", "", "log level (trace, debug, info, warn, error)")
	mode := flag.String("mode", "", "follow mode override (camera or offset)")
	target := flag.String("target", "", "initial target name")
	watch := flag.Bool("watch", false, "reload the scene when its prefab changes on disk")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *debug {
		cfg.Debug = true
	}
	if *mode != "" {
		cfg.Camera.FollowMode = *mode
	}
	if *target != "" {
		cfg.Camera.InitialTarget = *target
	}
	if *watch {
		cfg.Scene.Watch = true
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	level := cfg.Log.Level
	if *levelFlag != "" {
		level = *levelFlag
	}
	if err := logging.OverrideLevel(level); err != nil {
		log.Warn().Err(err).Msg("keeping configured log level")
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build scene")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("run game")
	}
}
