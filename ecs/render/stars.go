package render

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orrery/ecs/component"
)

type star struct {
	Position   mgl64.Vec3
	Brightness float64
}

// generateStars scatters field.Count points uniformly over the shell. The
// same field always yields the same stars.
func generateStars(field component.Starfield) []star {
	if field.Count <= 0 || field.Radius <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(field.Seed, field.Seed^0x9e3779b97f4a7c15))
	stars := make([]star, field.Count)
	for i := range stars {
		z := 2*rng.Float64() - 1
		phi := 2 * math.Pi * rng.Float64()
		r := math.Sqrt(1 - z*z)
		stars[i] = star{
			Position:   mgl64.Vec3{r * math.Cos(phi), z, r * math.Sin(phi)}.Mul(field.Radius),
			Brightness: 0.35 + 0.65*rng.Float64()*rng.Float64(),
		}
	}
	return stars
}
