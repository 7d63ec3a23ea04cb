package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/milk9111/orrery/assets"
	"github.com/milk9111/orrery/common"
)

// LoadTextureColor loads a texture from the embedded assets or the
// filesystem and caches its average color by key.
func LoadTextureColor(key string) (color.NRGBA, error) {
	if key == "" {
		return color.NRGBA{}, fmt.Errorf("empty texture key")
	}
	if c, ok := GetTextureColor(key); ok {
		return c, nil
	}
	img, err := loadImageFromAssetsOrFS(key)
	if err != nil {
		return color.NRGBA{}, err
	}
	c := common.AverageColor(img)
	RegisterTextureColor(key, c)
	return c, nil
}

func loadImageFromAssetsOrFS(path string) (image.Image, error) {
	if img, err := assets.LoadImage(path); err == nil {
		return img, nil
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Join("images", filepath.Base(path))}
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode texture %s: %w", p, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("failed to load texture %s", path)
}
