package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orrery/common"
	"github.com/milk9111/orrery/ecs"
	"github.com/milk9111/orrery/ecs/component"
	"github.com/milk9111/orrery/prefabs"
)

// NewCamera creates the camera entity following target. Zero-valued spec
// fields fall back to component.DefaultCamera.
func NewCamera(w *ecs.World, spec prefabs.CameraSpec, follow prefabs.FollowSpec, target ecs.Entity) (ecs.Entity, error) {
	cam := component.DefaultCamera()
	if spec.Position != nil {
		cam.Position = vec3(*spec.Position)
	}
	if spec.Up != nil {
		cam.Up = vec3(*spec.Up)
	}
	if spec.LookAt != nil {
		cam.LookAt = vec3(*spec.LookAt)
	}
	if spec.Fov > 0 {
		cam.FovY = spec.Fov
	}
	if spec.Aspect > 0 {
		cam.Aspect = spec.Aspect
	}
	if spec.Near > 0 {
		cam.Near = spec.Near
	}
	if spec.Far > 0 {
		cam.Far = spec.Far
	}

	mode, err := component.ParseFollowMode(follow.Mode)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	fallback := mgl64.Vec3{0, 0, 1}
	if follow.FallbackAxis != nil && vec3(*follow.FallbackAxis).Len() > 0 {
		fallback = vec3(*follow.FallbackAxis).Normalize()
	}
	if !common.PositiveFinite(follow.Distance) {
		return 0, fmt.Errorf("camera: follow distance %v must be positive", follow.Distance)
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &cam); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	if err := ecs.Add(w, camera, component.FollowComponent.Kind(), &component.Follow{
		Target:   uint64(target),
		Offset:   follow.Distance,
		Mode:     mode,
		Fallback: fallback,
	}); err != nil {
		return 0, fmt.Errorf("camera: add follow: %w", err)
	}
	if err := ecs.Add(w, camera, component.OrbitInputComponent.Kind(), &component.OrbitInput{}); err != nil {
		return 0, fmt.Errorf("camera: add orbit input: %w", err)
	}
	return camera, nil
}

func vec3(v prefabs.Vec3Spec) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}
