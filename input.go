package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/orrery/config"
	"github.com/milk9111/orrery/ecs/entity"
	"github.com/milk9111/orrery/sim"
	"github.com/rs/zerolog"
)

type keyBinding struct {
	key    ebiten.Key
	target string
}

// Input turns keys and mouse drags into target selections and orbit deltas.
type Input struct {
	log       zerolog.Logger
	bindings  []keyBinding
	dragSpeed float64
	keySpeed  float64
	blocked   Rect

	dragging     bool
	lastX, lastY int
}

func NewInput(targets []entity.Target, cfg config.CameraConfig, log zerolog.Logger) *Input {
	in := &Input{
		log:       log,
		dragSpeed: cfg.DragSpeed,
		keySpeed:  cfg.KeySpeed,
	}
	for _, t := range targets {
		if t.Key == "" {
			continue
		}
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(t.Key)); err != nil {
			log.Warn().Err(err).Str("target", t.Name).Str("key", t.Key).Msg("ignoring target key")
			continue
		}
		in.bindings = append(in.bindings, keyBinding{key: k, target: t.Name})
	}
	return in
}

// SetBlocked marks a screen region where drags do not start.
func (in *Input) SetBlocked(r Rect) {
	in.blocked = r
}

func (in *Input) Update(s *sim.Sim) {
	in.selectPressed(s, inpututil.IsKeyJustPressed)

	var yaw, pitch float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		yaw -= in.keySpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		yaw += in.keySpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		pitch -= in.keySpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		pitch += in.keySpeed
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		in.dragging = !in.blocked.Contains(float64(x), float64(y))
	case !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		in.dragging = false
	case in.dragging:
		yaw -= float64(x-in.lastX) * in.dragSpeed
		pitch -= float64(y-in.lastY) * in.dragSpeed
	}
	in.lastX, in.lastY = x, y

	if yaw != 0 || pitch != 0 {
		s.Orbit(yaw, pitch)
	}
}

// selectPressed runs bindings in target order, so the last bound key pressed
// in a frame wins.
func (in *Input) selectPressed(s *sim.Sim, justPressed func(ebiten.Key) bool) {
	for _, b := range in.bindings {
		if !justPressed(b.key) {
			continue
		}
		if err := s.Select(b.target); err != nil {
			in.log.Error().Err(err).Str("key", b.key.String()).Msg("select target")
		}
	}
}
