package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a node's local placement relative to its parent.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Matrix composes translation, rotation and scale (T * R * S).
func (t Transform) Matrix() mgl64.Mat4 {
	scale := t.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rot.Mat4()).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

var TransformComponent = NewComponent[Transform]()

// WorldTransform caches the composed ancestor chain for the renderer. It is
// refreshed once per frame by the hierarchy system.
type WorldTransform struct {
	Matrix mgl64.Mat4
}

// Position returns the translation column.
func (wt WorldTransform) Position() mgl64.Vec3 {
	return wt.Matrix.Col(3).Vec3()
}

var WorldTransformComponent = NewComponent[WorldTransform]()
