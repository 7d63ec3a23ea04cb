package ecs

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orrery/ecs/component"
)

var (
	ErrHierarchyCycle = errors.New("ecs: hierarchy cycle")
	ErrNotANode       = errors.New("ecs: entity is not a scene node")
)

// maxHierarchyDepth bounds ancestor walks.
const maxHierarchyDepth = 64

// NewNode creates a scene node under parent (0 for the scene root) with the
// given local transform.
func NewNode(w *World, name string, parent Entity, t component.Transform) (Entity, error) {
	if parent.Valid() && !Has(w, parent, component.NodeComponent.Kind()) {
		return 0, fmt.Errorf("node %q: parent %s: %w", name, parent, ErrNotANode)
	}
	e := CreateEntity(w)
	if err := Add(w, e, component.NodeComponent.Kind(), &component.Node{Name: name, Parent: uint64(parent)}); err != nil {
		return 0, fmt.Errorf("node %q: add node: %w", name, err)
	}
	if err := Add(w, e, component.TransformComponent.Kind(), &t); err != nil {
		return 0, fmt.Errorf("node %q: add transform: %w", name, err)
	}
	return e, nil
}

// SetParent re-parents a node. Moving a node under one of its own
// descendants is rejected.
func SetParent(w *World, child, parent Entity) error {
	node, ok := Get(w, child, component.NodeComponent.Kind())
	if !ok {
		return fmt.Errorf("set parent of %s: %w", child, ErrNotANode)
	}
	for p := parent; p.Valid(); {
		if p == child {
			return fmt.Errorf("set parent of %s to %s: %w", child, parent, ErrHierarchyCycle)
		}
		pn, ok := Get(w, p, component.NodeComponent.Kind())
		if !ok {
			return fmt.Errorf("set parent of %s to %s: %w", child, parent, ErrNotANode)
		}
		p = Entity(pn.Parent)
	}
	node.Parent = uint64(parent)
	return nil
}

// Parent returns the node's parent, or 0 for a root node.
func Parent(w *World, e Entity) Entity {
	node, ok := Get(w, e, component.NodeComponent.Kind())
	if !ok {
		return 0
	}
	return Entity(node.Parent)
}

// Children returns the direct children of parent (0 lists root nodes).
func Children(w *World, parent Entity) []Entity {
	var out []Entity
	for _, e := range w.Query(component.NodeComponent.Kind()) {
		if Parent(w, e) == parent {
			out = append(out, e)
		}
	}
	return out
}

// FindByName returns the first node with the given name.
func FindByName(w *World, name string) (Entity, bool) {
	for _, e := range w.Query(component.NodeComponent.Kind()) {
		if node, _ := Get(w, e, component.NodeComponent.Kind()); node.Name == name {
			return e, true
		}
	}
	return 0, false
}

// NodeName returns the node's name, or "" for non-nodes.
func NodeName(w *World, e Entity) string {
	node, ok := Get(w, e, component.NodeComponent.Kind())
	if !ok {
		return ""
	}
	return node.Name
}

// WorldMatrix composes the local transforms from the root down to e.
func WorldMatrix(w *World, e Entity) (mgl64.Mat4, error) {
	m := mgl64.Ident4()
	cur := e
	for depth := 0; cur.Valid(); depth++ {
		if depth > maxHierarchyDepth {
			return mgl64.Mat4{}, fmt.Errorf("world matrix of %s: %w", e, ErrHierarchyCycle)
		}
		if !IsAlive(w, cur) {
			return mgl64.Mat4{}, fmt.Errorf("world matrix of %s: ancestor %s: %w", e, cur, component.ErrEntityNotAlive)
		}
		if t, ok := Get(w, cur, component.TransformComponent.Kind()); ok {
			m = t.Matrix().Mul4(m)
		}
		cur = Parent(w, cur)
	}
	return m, nil
}

// WorldPosition returns the node's origin in world space.
func WorldPosition(w *World, e Entity) (mgl64.Vec3, error) {
	m, err := WorldMatrix(w, e)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return m.Col(3).Vec3(), nil
}

// Rotate spins a node about a local axis by angle radians.
func Rotate(w *World, e Entity, axis mgl64.Vec3, angle float64) error {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("rotate %s: %w", e, ErrNotANode)
	}
	if axis.Len() == 0 || angle == 0 {
		return nil
	}
	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	t.Rotation = rot.Mul(mgl64.QuatRotate(angle, axis.Normalize())).Normalize()
	return nil
}
