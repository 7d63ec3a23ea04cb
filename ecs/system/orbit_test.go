package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestOrbitAround(t *testing.T) {
	center := mgl64.Vec3{35, 0, 0}
	up := mgl64.Vec3{0, 1, 0}

	cases := []struct {
		name       string
		pos        mgl64.Vec3
		yaw, pitch float64
		want       mgl64.Vec3
	}{
		{"no_input", mgl64.Vec3{40, 0, 0}, 0, 0, mgl64.Vec3{40, 0, 0}},
		{"quarter_yaw", mgl64.Vec3{40, 0, 0}, math.Pi / 2, 0, mgl64.Vec3{35, 0, -5}},
		{"pitch_up_clamped_at_pole", mgl64.Vec3{40, 0, 0}, 0, -math.Pi, mgl64.Vec3{35 + 5*math.Sin(minPolar), 5 * math.Cos(minPolar), 0}},
		{"on_center_is_unchanged", center, 1, 1, center},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := OrbitAround(c.pos, center, up, c.yaw, c.pitch)
			if !got.ApproxEqualThreshold(c.want, 1e-9) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if d := got.Sub(center).Len(); math.Abs(d-c.pos.Sub(center).Len()) > 1e-9 {
				t.Fatalf("orbit changed the radius to %v", d)
			}
		})
	}
}
