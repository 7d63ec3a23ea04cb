package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orrery/ecs"
	"github.com/milk9111/orrery/ecs/component"
)

// HierarchySystem refreshes the WorldTransform of every node, resolving each
// parent once per pass.
type HierarchySystem struct {
	resolved map[ecs.Entity]mgl64.Mat4
}

func NewHierarchySystem() *HierarchySystem {
	return &HierarchySystem{resolved: make(map[ecs.Entity]mgl64.Mat4)}
}

func (hs *HierarchySystem) Update(w *ecs.World) {
	clear(hs.resolved)
	ecs.ForEach2(w, component.NodeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Node, _ *component.Transform) {
		m := hs.resolve(w, e, 0)
		if wt, ok := ecs.Get(w, e, component.WorldTransformComponent.Kind()); ok {
			wt.Matrix = m
			return
		}
		if err := ecs.Add(w, e, component.WorldTransformComponent.Kind(), &component.WorldTransform{Matrix: m}); err != nil {
			panic("hierarchy system: add world transform: " + err.Error())
		}
	})
}

func (hs *HierarchySystem) resolve(w *ecs.World, e ecs.Entity, depth int) mgl64.Mat4 {
	if m, ok := hs.resolved[e]; ok {
		return m
	}
	if depth > 64 {
		panic("hierarchy system: " + ecs.ErrHierarchyCycle.Error())
	}
	local := mgl64.Ident4()
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		local = t.Matrix()
	}
	m := local
	if parent := ecs.Parent(w, e); parent.Valid() {
		if !ecs.IsAlive(w, parent) {
			panic("hierarchy system: node " + e.String() + " has a dead parent")
		}
		m = hs.resolve(w, parent, depth+1).Mul4(local)
	}
	hs.resolved[e] = m
	return m
}
