package component

// Sphere is a renderable ball of Radius in local units; the world transform's
// scale applies on top.
type Sphere struct {
	Radius float64
	// Markers is the number of equator dots drawn to show spin.
	Markers int
}

var SphereComponent = NewComponent[Sphere]()

// Starfield is a shell of background stars centered on the world origin.
type Starfield struct {
	Radius float64
	Count  int
	Seed   uint64
}

var StarfieldComponent = NewComponent[Starfield]()
