package main

import (
	"fmt"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/orrery/config"
	"github.com/milk9111/orrery/ecs/render"
	"github.com/milk9111/orrery/logging"
	"github.com/milk9111/orrery/prefabs"
	"github.com/milk9111/orrery/sim"
	"github.com/rs/zerolog"
)

type Game struct {
	cfg config.Config
	log zerolog.Logger

	sim      *sim.Sim
	renderer *render.Renderer
	ui       *ebitenui.UI
	input    *Input
	watcher  *prefabs.Watcher
	// loadedAt is the disk mod time of the prefab last loaded, zero when
	// it came from the embedded copy.
	loadedAt time.Time
}

func NewGame(cfg config.Config) (*Game, error) {
	spec, err := prefabs.LoadSceneSpec(cfg.Scene.Prefab)
	if err != nil {
		return nil, err
	}
	s, err := sim.New(spec, sim.Options{
		FollowMode:    cfg.Camera.FollowMode,
		InitialTarget: cfg.Camera.InitialTarget,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		log:      logging.For("game"),
		sim:      s,
		renderer: render.NewRenderer(logging.For("render")),
	}
	g.bindControls()
	g.loadedAt, _ = prefabs.ModTime(cfg.Scene.Prefab)

	if cfg.Scene.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			g.log.Warn().Err(err).Str("dir", prefabs.Dir).Msg("prefab hot reload disabled")
		} else {
			g.watcher = w
			g.log.Info().Str("dir", prefabs.Dir).Msg("watching prefabs")
		}
	}
	return g, nil
}

// bindControls rebuilds the buttons and key bindings for the current scene.
func (g *Game) bindControls() {
	targets := g.sim.Scene.Targets
	g.ui = NewTargetUI(targets, func(name string) {
		if err := g.sim.Select(name); err != nil {
			g.log.Error().Err(err).Msg("select target")
		}
	})
	g.input = NewInput(targets, g.cfg.Camera, g.log)
	g.input.SetBlocked(Rect{Width: 1 << 20, Height: uiBarHeight})
}

func (g *Game) Update() error {
	g.pollReload()

	g.ui.Update()
	g.input.Update(g.sim)
	g.sim.Step()

	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if !prefabs.SameFile(path, g.cfg.Scene.Prefab) {
				continue
			}
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn().Err(err).Msg("prefab watcher")
		default:
			return
		}
	}
}

func (g *Game) reload() {
	mt, onDisk := prefabs.ModTime(g.cfg.Scene.Prefab)
	if onDisk && !mt.After(g.loadedAt) {
		return
	}
	spec, err := prefabs.LoadSceneSpec(g.cfg.Scene.Prefab)
	if err != nil {
		g.log.Error().Err(err).Str("prefab", g.cfg.Scene.Prefab).Msg("reload failed, keeping current scene")
		return
	}
	if err := g.sim.Reload(spec); err != nil {
		g.log.Error().Err(err).Str("prefab", g.cfg.Scene.Prefab).Msg("reload failed, keeping current scene")
		return
	}
	g.loadedAt = mt
	g.bindControls()
}

func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	frame := g.renderer.Build(g.sim.World, float64(b.Dx()), float64(b.Dy()))
	paintFrame(screen, frame)
	g.ui.Draw(screen)

	if g.cfg.Debug {
		st := g.sim.Status()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  frame: %d  target: %s (%.1f)  bodies: %d",
			ebiten.ActualFPS(), st.Frame, st.Target, st.Distance, len(frame.Bodies)), 8, uiBarHeight+4)
	}
}

// LayoutF follows the window size and keeps the camera aspect in step.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if cam := g.sim.Camera(); cam != nil {
		cam.SetViewport(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
