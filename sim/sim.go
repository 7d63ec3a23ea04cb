// Package sim owns one running scene: its world, its systems and the
// selectable targets. Both the window and the headless trace drive it.
package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orrery/ecs"
	"github.com/milk9111/orrery/ecs/component"
	"github.com/milk9111/orrery/ecs/entity"
	"github.com/milk9111/orrery/ecs/system"
	"github.com/milk9111/orrery/logging"
	"github.com/milk9111/orrery/prefabs"
	"github.com/rs/zerolog"
)

var ErrUnknownTarget = errors.New("unknown target")

// Options override parts of the scene file.
type Options struct {
	// FollowMode replaces the scene's follow mode when non-empty.
	FollowMode string
	// InitialTarget names a target to select before the first frame.
	InitialTarget string
}

// Status is a snapshot of the camera after the latest frame.
type Status struct {
	Frame    int
	Target   string
	Distance float64
	Camera   mgl64.Vec3
	LookAt   mgl64.Vec3
}

type Sim struct {
	World *ecs.World
	Scene *entity.Scene

	scheduler *ecs.Scheduler
	opts      Options
	frames    int
	log       zerolog.Logger
}

// New builds the scene described by spec.
func New(spec *prefabs.SceneSpec, opts Options) (*Sim, error) {
	s := &Sim{opts: opts, log: logging.For("sim")}
	w, scene, err := s.build(spec)
	if err != nil {
		return nil, err
	}
	s.World, s.Scene = w, scene
	s.scheduler = newScheduler()

	if opts.InitialTarget != "" {
		t, ok := s.Target(opts.InitialTarget)
		if !ok {
			return nil, fmt.Errorf("sim: initial target %q: %w", opts.InitialTarget, ErrUnknownTarget)
		}
		system.SelectTarget(s.World, s.Scene.Camera, t.Node, t.Distance)
	}
	s.log.Info().Str("scene", scene.Name).Int("targets", len(scene.Targets)).Msg("scene built")
	return s, nil
}

func newScheduler() *ecs.Scheduler {
	return ecs.NewScheduler(
		system.NewRotationSystem(),
		system.NewHierarchySystem(),
		system.NewCameraSystem(),
	)
}

func (s *Sim) build(spec *prefabs.SceneSpec) (*ecs.World, *entity.Scene, error) {
	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, spec)
	if err != nil {
		return nil, nil, fmt.Errorf("sim: %w", err)
	}
	if s.opts.FollowMode != "" {
		mode, err := component.ParseFollowMode(s.opts.FollowMode)
		if err != nil {
			return nil, nil, fmt.Errorf("sim: %w", err)
		}
		follow, _ := ecs.Get(w, scene.Camera, component.FollowComponent.Kind())
		follow.Mode = mode
	}
	return w, scene, nil
}

// Step runs one frame of every system.
func (s *Sim) Step() {
	s.scheduler.Update(s.World)
	s.frames++
}

// Frames is the number of completed steps.
func (s *Sim) Frames() int {
	return s.frames
}

// Target finds a selectable target by name, node name or key binding.
func (s *Sim) Target(name string) (entity.Target, bool) {
	for _, t := range s.Scene.Targets {
		if strings.EqualFold(t.Name, name) || t.NodeName == name || (t.Key != "" && t.Key == name) {
			return t, true
		}
	}
	return entity.Target{}, false
}

// Select queues a switch to the named target. It takes effect on the next
// Step.
func (s *Sim) Select(name string) error {
	t, ok := s.Target(name)
	if !ok {
		return fmt.Errorf("sim: select %q: %w", name, ErrUnknownTarget)
	}
	s.SelectTarget(t)
	return nil
}

// SelectTarget queues t as the next follow target.
func (s *Sim) SelectTarget(t entity.Target) {
	s.World.Events().Push(ecs.Event{
		Type: ecs.EventTargetSelected,
		Data: ecs.TargetSelected{Target: t.Node, Distance: t.Distance},
	})
	s.log.Debug().Str("target", t.Name).Float64("distance", t.Distance).Msg("target selected")
}

// Orbit adds yaw and pitch to the pending orbit input.
func (s *Sim) Orbit(yaw, pitch float64) {
	in, ok := ecs.Get(s.World, s.Scene.Camera, component.OrbitInputComponent.Kind())
	if !ok {
		return
	}
	in.Yaw += yaw
	in.Pitch += pitch
}

// Camera returns the scene camera.
func (s *Sim) Camera() *component.Camera {
	cam, _ := ecs.Get(s.World, s.Scene.Camera, component.CameraComponent.Kind())
	return cam
}

func (s *Sim) Status() Status {
	st := Status{Frame: s.frames}
	if cam := s.Camera(); cam != nil {
		st.Camera = cam.Position
		st.LookAt = cam.LookAt
	}
	target, distance, ok := system.FollowTarget(s.World, s.Scene.Camera)
	if !ok {
		return st
	}
	st.Distance = distance
	st.Target = ecs.NodeName(s.World, target)
	for _, t := range s.Scene.Targets {
		if t.Node == target {
			st.Target = t.Name
			break
		}
	}
	return st
}

// Reload rebuilds the scene from spec. The camera keeps its position and,
// when a node of the same name still exists, its target and distance. On
// error the running scene is left untouched.
func (s *Sim) Reload(spec *prefabs.SceneSpec) error {
	w, scene, err := s.build(spec)
	if err != nil {
		return err
	}

	oldTarget, distance, hasTarget := system.FollowTarget(s.World, s.Scene.Camera)
	targetName := ""
	if hasTarget {
		targetName = ecs.NodeName(s.World, oldTarget)
	}
	var camPos *mgl64.Vec3
	if cam := s.Camera(); cam != nil {
		p := cam.Position
		camPos = &p
	}

	if camPos != nil {
		if cam, ok := ecs.Get(w, scene.Camera, component.CameraComponent.Kind()); ok {
			cam.Position = *camPos
		}
	}
	if node, ok := scene.Node(targetName); ok && targetName != "" {
		system.SelectTarget(w, scene.Camera, node, distance)
	} else if targetName != "" {
		s.log.Warn().Str("target", targetName).Msg("follow target gone after reload, using scene default")
	}

	s.World, s.Scene = w, scene
	s.scheduler = newScheduler()
	s.log.Info().Str("scene", scene.Name).Msg("scene reloaded")
	return nil
}
