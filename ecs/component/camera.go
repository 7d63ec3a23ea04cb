package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at LookAt. FovY is in degrees.
type Camera struct {
	Position mgl64.Vec3
	LookAt   mgl64.Vec3
	Up       mgl64.Vec3
	FovY     float64
	Aspect   float64
	Near     float64
	Far      float64
}

// DefaultCamera matches the demo's initial framing.
func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{30, 12, 30},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     40,
		Aspect:   2,
		Near:     0.1,
		Far:      1000,
	}
}

func (c Camera) View() mgl64.Mat4 {
	up := c.Up
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(c.Position, c.LookAt, up)
}

func (c Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// SetViewport recomputes the aspect ratio from a container size. A zero
// height leaves the aspect untouched.
func (c *Camera) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
}

// Projected is a world point mapped to screen pixels.
type Projected struct {
	X, Y float64
	// Depth is the distance along the view axis (positive in front).
	Depth float64
}

// Project maps a world point onto a width x height viewport. ok is false for
// points outside the near/far range.
func (c Camera) Project(p mgl64.Vec3, width, height float64) (Projected, bool) {
	viewPos := c.View().Mul4x1(p.Vec4(1))
	depth := -viewPos.Z()
	if depth < c.Near || depth > c.Far {
		return Projected{}, false
	}
	clip := c.Projection().Mul4x1(viewPos)
	if clip.W() == 0 {
		return Projected{}, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	return Projected{
		X:     (ndcX + 1) * 0.5 * width,
		Y:     (1 - ndcY) * 0.5 * height,
		Depth: depth,
	}, true
}

// ScreenRadius returns the on-screen radius of a sphere of world radius r at
// the given view depth.
func (c Camera) ScreenRadius(r, depth, height float64) float64 {
	if depth <= 0 {
		return 0
	}
	focal := (height / 2) / math.Tan(mgl64.DegToRad(c.FovY)/2)
	return r * focal / depth
}

var CameraComponent = NewComponent[Camera]()
