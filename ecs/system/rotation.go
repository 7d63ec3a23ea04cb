package system

import (
	"github.com/milk9111/orrery/ecs"
	"github.com/milk9111/orrery/ecs/component"
)

// RotationSystem advances every Rotator by its fixed increment. Rotators act
// on their own node only, so their order does not matter.
type RotationSystem struct{}

func NewRotationSystem() *RotationSystem {
	return &RotationSystem{}
}

func (rs *RotationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.RotatorComponent.Kind(), func(e ecs.Entity, r *component.Rotator) {
		if err := ecs.Rotate(w, e, r.Axis, r.Increment); err != nil {
			panic("rotation system: " + err.Error())
		}
	})
}
