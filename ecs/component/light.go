package component

import "image/color"

type LightKind int

const (
	LightAmbient LightKind = iota
	LightPoint
)

// Light illuminates spheres. Point lights sit at their entity's world
// position; ambient lights have no position.
type Light struct {
	Kind      LightKind
	Color     color.NRGBA
	Intensity float64
}

var LightComponent = NewComponent[Light]()
