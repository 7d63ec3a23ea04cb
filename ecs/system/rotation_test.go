package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orrery/ecs"
	"github.com/milk9111/orrery/ecs/component"
)

func spinner(t *testing.T, w *ecs.World, name string, inc float64) ecs.Entity {
	t.Helper()
	e, err := ecs.NewNode(w, name, 0, component.NewTransform())
	if err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.RotatorComponent.Kind(), &component.Rotator{Axis: mgl64.Vec3{0, 1, 0}, Increment: inc}); err != nil {
		t.Fatal(err)
	}
	return e
}

func rotationOf(t *testing.T, w *ecs.World, e ecs.Entity) mgl64.Quat {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatal("missing transform")
	}
	return tr.Rotation
}

func TestRotationSystemAccumulates(t *testing.T) {
	w := ecs.NewWorld()
	planet := spinner(t, w, "earth", 0.001)
	clouds := spinner(t, w, "clouds", 0.004)

	rs := NewRotationSystem()
	for i := 0; i < 1000; i++ {
		rs.Update(w)
	}

	cases := []struct {
		name  string
		node  ecs.Entity
		angle float64
	}{
		{"planet", planet, 1.0},
		{"clouds_spin_faster", clouds, 4.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			want := mgl64.QuatRotate(c.angle, mgl64.Vec3{0, 1, 0})
			if got := rotationOf(t, w, c.node); !got.OrientationEqualThreshold(want, 1e-9) {
				t.Fatalf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestRotatorsOnDisjointNodesCommute(t *testing.T) {
	apply := func(order []int) (mgl64.Quat, mgl64.Quat) {
		w := ecs.NewWorld()
		a := spinner(t, w, "a", 0.001)
		b := spinner(t, w, "b", 0.004)
		nodes := []ecs.Entity{a, b}
		for frame := 0; frame < 10; frame++ {
			for _, i := range order {
				r, _ := ecs.Get(w, nodes[i], component.RotatorComponent.Kind())
				if err := ecs.Rotate(w, nodes[i], r.Axis, r.Increment); err != nil {
					t.Fatal(err)
				}
			}
		}
		return rotationOf(t, w, a), rotationOf(t, w, b)
	}

	a1, b1 := apply([]int{0, 1})
	a2, b2 := apply([]int{1, 0})
	if !a1.ApproxEqualThreshold(a2, 1e-12) || !b1.ApproxEqualThreshold(b2, 1e-12) {
		t.Fatalf("rotation order changed the result: (%v,%v) vs (%v,%v)", a1, b1, a2, b2)
	}
}

func TestHierarchySystemCachesWorldTransforms(t *testing.T) {
	w := ecs.NewWorld()
	root := spinner(t, w, "root", 0)
	tr := component.NewTransform()
	tr.Position = mgl64.Vec3{35, 0, 0}
	child, err := ecs.NewNode(w, "child", root, tr)
	if err != nil {
		t.Fatal(err)
	}

	hs := NewHierarchySystem()
	hs.Update(w)
	if err := ecs.Rotate(w, root, mgl64.Vec3{0, 1, 0}, 0.5); err != nil {
		t.Fatal(err)
	}
	hs.Update(w)

	wt, ok := ecs.Get(w, child, component.WorldTransformComponent.Kind())
	if !ok {
		t.Fatal("missing world transform")
	}
	want, err := ecs.WorldPosition(w, child)
	if err != nil {
		t.Fatal(err)
	}
	if !wt.Position().ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("cached %v, walked %v", wt.Position(), want)
	}
}
