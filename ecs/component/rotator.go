package component

import "github.com/go-gl/mathgl/mgl64"

// Rotator spins its entity by a fixed increment (radians) every frame.
type Rotator struct {
	Axis      mgl64.Vec3
	Increment float64
}

var RotatorComponent = NewComponent[Rotator]()
