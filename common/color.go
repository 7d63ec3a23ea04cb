package common

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor accepts "#rrggbb", "#rgb", "0xrrggbb" or a CSS color name.
func ParseColor(s string) (color.NRGBA, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}
	if c, ok := colornames.Map[raw]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "0x"); ok {
		raw = "#" + rest
	}
	if !strings.HasPrefix(raw, "#") {
		raw = "#" + raw
	}
	c, err := colorful.Hex(raw)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Lighting is the light reaching one surface, already summed over lights.
type Lighting struct {
	Ambient colorful.Color
	Diffuse colorful.Color
}

// Shade combines a base color with lighting and an emissive term, clamped to
// the displayable range. alpha is in [0,1].
func Shade(base color.NRGBA, light Lighting, emissive color.NRGBA, emissiveIntensity, alpha float64) color.NRGBA {
	b := toColorful(base)
	e := toColorful(emissive)
	out := colorful.Color{
		R: b.R*(light.Ambient.R+light.Diffuse.R) + e.R*emissiveIntensity,
		G: b.G*(light.Ambient.G+light.Diffuse.G) + e.G*emissiveIntensity,
		B: b.B*(light.Ambient.B+light.Diffuse.B) + e.B*emissiveIntensity,
	}.Clamped()
	r, g, bb := out.RGB255()
	return color.NRGBA{R: r, G: g, B: bb, A: uint8(Clamp(alpha, 0, 1)*255 + 0.5)}
}

// Scale multiplies a light color by an intensity.
func Scale(c color.NRGBA, intensity float64) colorful.Color {
	cc := toColorful(c)
	return colorful.Color{R: cc.R * intensity, G: cc.G * intensity, B: cc.B * intensity}
}

// AddLight sums two light contributions without clamping.
func AddLight(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

// Tint blends base toward tint in Lab space by t.
func Tint(base, tint color.NRGBA, t float64) color.NRGBA {
	out := toColorful(base).BlendLab(toColorful(tint), Clamp(t, 0, 1)).Clamped()
	r, g, b := out.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: base.A}
}

// AverageColor returns the mean opaque color of img.
func AverageColor(img image.Image) color.NRGBA {
	bounds := img.Bounds()
	var r, g, b, n float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			r += float64(c.R)
			g += float64(c.G)
			b += float64(c.B)
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: uint8(r/n + 0.5), G: uint8(g/n + 0.5), B: uint8(b/n + 0.5), A: 0xff}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Multiply modulates base by tint channel-wise, keeping base's alpha.
func Multiply(base, tint color.NRGBA) color.NRGBA {
	mul := func(a, b uint8) uint8 {
		return uint8((uint16(a)*uint16(b) + 127) / 255)
	}
	return color.NRGBA{R: mul(base.R, tint.R), G: mul(base.G, tint.G), B: mul(base.B, tint.B), A: base.A}
}
