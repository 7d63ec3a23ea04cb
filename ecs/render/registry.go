package render

import "image/color"

var textureColors = map[string]color.NRGBA{}

// RegisterTextureColor stores a texture's average color by key.
func RegisterTextureColor(key string, c color.NRGBA) {
	if key == "" {
		return
	}
	textureColors[key] = c
}

// GetTextureColor returns a cached texture color by key.
func GetTextureColor(key string) (color.NRGBA, bool) {
	if key == "" {
		return color.NRGBA{}, false
	}
	c, ok := textureColors[key]
	return c, ok
}
