package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/orrery/ecs"
	"github.com/milk9111/orrery/ecs/component"
	"github.com/milk9111/orrery/logging"
	"github.com/milk9111/orrery/prefabs"
)

func loadSpec(t *testing.T) *prefabs.SceneSpec {
	t.Helper()
	logging.ConfigureTests()
	spec, err := prefabs.LoadSceneSpec("solar_system.yaml")
	if err != nil {
		t.Fatalf("load spec: %v", err)
	}
	return spec
}

func newSim(t *testing.T, opts Options) *Sim {
	t.Helper()
	s, err := New(loadSpec(t), opts)
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	return s
}

func targetDistance(t *testing.T, s *Sim) float64 {
	t.Helper()
	st := s.Status()
	return st.Camera.Sub(st.LookAt).Len()
}

func TestStepKeepsEarthDistance(t *testing.T) {
	s := newSim(t, Options{})
	for i := 0; i < 120; i++ {
		s.Step()
		if d := targetDistance(t, s); math.Abs(d-5) > 1e-6 {
			t.Fatalf("frame %d: expected distance 5, got %v", i, d)
		}
	}
	st := s.Status()
	if st.Target != "Earth" || st.Frame != 120 || s.Frames() != 120 {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestSelectByNameNodeAndKey(t *testing.T) {
	cases := []struct {
		query    string
		want     string
		distance float64
	}{
		{"Sun", "Sun", 50},
		{"moon", "Moon", 2},
		{"Digit2", "Earth", 5},
		{"earth_orbit", "Earth", 5},
	}
	for _, c := range cases {
		t.Run(c.query, func(t *testing.T) {
			s := newSim(t, Options{})
			if err := s.Select(c.query); err != nil {
				t.Fatal(err)
			}
			s.Step()
			st := s.Status()
			if st.Target != c.want || st.Distance != c.distance {
				t.Fatalf("expected %s at %v, got %+v", c.want, c.distance, st)
			}
			if d := targetDistance(t, s); math.Abs(d-c.distance) > 1e-6 {
				t.Fatalf("expected camera %v away, got %v", c.distance, d)
			}
		})
	}
}

func TestSelectUnknownTarget(t *testing.T) {
	s := newSim(t, Options{})
	if err := s.Select("pluto"); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
	if _, err := New(loadSpec(t), Options{InitialTarget: "pluto"}); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestOptionsOverrideScene(t *testing.T) {
	s := newSim(t, Options{FollowMode: "offset", InitialTarget: "Moon"})
	follow, ok := ecs.Get(s.World, s.Scene.Camera, component.FollowComponent.Kind())
	if !ok || follow.Mode != component.FollowOffset {
		t.Fatalf("expected offset mode, got %+v", follow)
	}
	if st := s.Status(); st.Target != "Moon" || st.Distance != 2 {
		t.Fatalf("expected initial target Moon, got %+v", st)
	}

	if _, err := New(loadSpec(t), Options{FollowMode: "spiral"}); err == nil {
		t.Fatal("expected bad follow mode to fail")
	}
}

func TestOrbitMovesCameraAroundTarget(t *testing.T) {
	s := newSim(t, Options{})
	s.Step()
	before := s.Status()
	s.Orbit(0.5, 0)
	s.Step()
	after := s.Status()
	if after.Camera.ApproxEqualThreshold(before.Camera, 1e-3) {
		t.Fatal("orbit input should move the camera")
	}
	if d := targetDistance(t, s); math.Abs(d-5) > 1e-6 {
		t.Fatalf("orbit broke the follow distance: %v", d)
	}
}

func TestReloadKeepsTargetAndCamera(t *testing.T) {
	s := newSim(t, Options{})
	if err := s.Select("Moon"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		s.Step()
	}
	before := s.Status()

	if err := s.Reload(loadSpec(t)); err != nil {
		t.Fatal(err)
	}
	cam := s.Camera()
	if !cam.Position.ApproxEqualThreshold(before.Camera, 1e-12) {
		t.Fatalf("camera moved on reload: %v -> %v", before.Camera, cam.Position)
	}
	s.Step()
	after := s.Status()
	if after.Target != "Moon" || after.Distance != 2 {
		t.Fatalf("expected Moon to survive reload, got %+v", after)
	}
}

func TestReloadFailureKeepsScene(t *testing.T) {
	s := newSim(t, Options{})
	world := s.World
	bad := loadSpec(t)
	bad.Follow.Target = "nowhere"
	if err := s.Reload(bad); err == nil {
		t.Fatal("expected reload to fail")
	}
	if s.World != world {
		t.Fatal("failed reload replaced the world")
	}
	s.Step()
	if st := s.Status(); st.Target != "Earth" {
		t.Fatalf("unexpected target %+v", st)
	}
}

func TestReloadFallsBackWhenTargetRemoved(t *testing.T) {
	s := newSim(t, Options{})
	if err := s.Select("Moon"); err != nil {
		t.Fatal(err)
	}
	s.Step()

	spec := loadSpec(t)
	// Drop the moon subtree and its target.
	spec.Walk(func(node *prefabs.NodeSpec, parent string) {
		if node.Name == "earth_orbit" {
			kept := node.Children[:0]
			for _, c := range node.Children {
				if c.Name != "moon_orbit" {
					kept = append(kept, c)
				}
			}
			node.Children = kept
		}
	})
	targets := spec.Targets[:0]
	for _, ts := range spec.Targets {
		if ts.Node != "moon" {
			targets = append(targets, ts)
		}
	}
	spec.Targets = targets

	if err := s.Reload(spec); err != nil {
		t.Fatal(err)
	}
	s.Step()
	if st := s.Status(); st.Target != "Earth" || st.Distance != 5 {
		t.Fatalf("expected scene default target, got %+v", st)
	}
}
