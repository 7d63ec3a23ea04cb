package component

import "image/color"

// Material lists every shading option the renderer understands. Zero values
// are not meaningful for all fields, so start from DefaultMaterial.
type Material struct {
	// Color is the diffuse base color. Default white.
	Color color.NRGBA
	// Emissive is added regardless of lighting. Default black.
	Emissive color.NRGBA
	// EmissiveIntensity scales Emissive. Default 1.
	EmissiveIntensity float64
	// Specular tints the highlight. Default #111111.
	Specular color.NRGBA
	// Shininess sharpens the highlight; 0 disables it. Default 30.
	Shininess float64
	// Reflectivity scales the highlight strength. Default 1.
	Reflectivity float64
	// Opacity is used when Transparent is set. Default 1.
	Opacity     float64
	Transparent bool
	// FlatShading draws a uniformly lit disc with no highlight or surface
	// markers. Default false.
	FlatShading bool
	// Texture is an optional image path; its average color tints Color.
	Texture string
}

func DefaultMaterial() Material {
	return Material{
		Color:             color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Emissive:          color.NRGBA{A: 0xff},
		EmissiveIntensity: 1,
		Specular:          color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff},
		Shininess:         30,
		Reflectivity:      1,
		Opacity:           1,
	}
}

// Alpha is the effective opacity in [0,1].
func (m Material) Alpha() float64 {
	if !m.Transparent {
		return 1
	}
	switch {
	case m.Opacity < 0:
		return 0
	case m.Opacity > 1:
		return 1
	}
	return m.Opacity
}

var MaterialComponent = NewComponent[Material]()
