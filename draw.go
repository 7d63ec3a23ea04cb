package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/orrery/ecs/render"
)

var background = color.NRGBA{R: 0x02, G: 0x02, B: 0x08, A: 0xff}

// paintFrame draws f back to front.
func paintFrame(screen *ebiten.Image, f render.Frame) {
	screen.Fill(background)
	for _, s := range f.Stars {
		vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.Size), float32(s.Size), s.Color, false)
	}
	for _, b := range f.Bodies {
		fillDisc(screen, b.Disc)
		for _, m := range b.Markers {
			vector.FillRect(screen, float32(m.X), float32(m.Y), float32(m.Size), float32(m.Size), m.Color, true)
		}
		if b.Highlight != nil {
			fillDisc(screen, *b.Highlight)
		}
	}
}

func fillDisc(screen *ebiten.Image, d render.Disc) {
	if d.Color.A == 0 {
		return
	}
	vector.FillCircle(screen, float32(d.X), float32(d.Y), float32(d.Radius), d.Color, true)
}
