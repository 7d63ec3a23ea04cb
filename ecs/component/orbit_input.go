package component

// OrbitInput accumulates user orbit deltas (radians) until the camera system
// consumes them.
type OrbitInput struct {
	Yaw   float64
	Pitch float64
}

var OrbitInputComponent = NewComponent[OrbitInput]()
