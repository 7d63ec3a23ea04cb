package system

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orrery/common"
	"github.com/milk9111/orrery/ecs"
	"github.com/milk9111/orrery/ecs/component"
)

// degenerateEpsilon is the offset length below which the camera is treated
// as sitting on its target.
const degenerateEpsilon = 1e-9

// CameraSystem keeps the camera a fixed distance from its follow target.
type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update applies pending target selections, then re-centers the camera on
// the target's current world position.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraTagComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	follow, ok := ecs.Get(w, cs.camEntity, component.FollowComponent.Kind())
	if !ok {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventTargetSelected) {
		sel, ok := evt.Data.(ecs.TargetSelected)
		if !ok {
			panic(fmt.Sprintf("camera system: unexpected selection payload %T", evt.Data))
		}
		SelectTarget(w, cs.camEntity, sel.Target, sel.Distance)
	}

	targetPos, err := ecs.WorldPosition(w, ecs.Entity(follow.Target))
	if err != nil {
		panic("camera system: follow target: " + err.Error())
	}

	pos := cam.Position
	if follow.Mode == component.FollowOffset && follow.HasPrev {
		pos = pos.Add(targetPos.Sub(follow.PrevTarget))
	}
	if in, ok := ecs.Get(w, cs.camEntity, component.OrbitInputComponent.Kind()); ok && (in.Yaw != 0 || in.Pitch != 0) {
		pos = OrbitAround(pos, targetPos, cam.Up, in.Yaw, in.Pitch)
		in.Yaw, in.Pitch = 0, 0
	}

	next, dir := FollowStep(pos, targetPos, follow.Offset, fallbackDirection(follow))
	cam.Position = next
	cam.LookAt = targetPos

	follow.LastDir = dir
	follow.HasDir = true
	follow.PrevTarget = targetPos
	follow.HasPrev = true
}

// FollowStep places the camera distance units from target, on the side of
// target that from lies on. When from and target coincide the fallback
// direction is used instead.
func FollowStep(from, target mgl64.Vec3, distance float64, fallback mgl64.Vec3) (pos, dir mgl64.Vec3) {
	offset := from.Sub(target)
	l := offset.Len()
	if l > degenerateEpsilon && !math.IsInf(l, 0) && !math.IsNaN(l) {
		dir = offset.Mul(1 / l)
	} else {
		dir = fallback
	}
	return target.Add(dir.Mul(distance)), dir
}

func fallbackDirection(f *component.Follow) mgl64.Vec3 {
	if f.HasDir && f.LastDir.Len() > degenerateEpsilon {
		return f.LastDir.Normalize()
	}
	if f.Fallback.Len() > degenerateEpsilon {
		return f.Fallback.Normalize()
	}
	return mgl64.Vec3{0, 0, 1}
}

// SelectTarget replaces the follow target and distance. Invalid arguments are
// programming errors and panic.
func SelectTarget(w *ecs.World, camera, target ecs.Entity, distance float64) {
	follow, ok := ecs.Get(w, camera, component.FollowComponent.Kind())
	if !ok {
		panic(fmt.Sprintf("camera system: select target: %s has no follow state", camera))
	}
	if !ecs.Has(w, target, component.NodeComponent.Kind()) {
		panic(fmt.Sprintf("camera system: select target: %s is not a live scene node", target))
	}
	if !common.PositiveFinite(distance) {
		panic(fmt.Sprintf("camera system: select target: distance %v must be positive", distance))
	}
	follow.Target = uint64(target)
	follow.Offset = distance
	// The previous target's motion must not leak into the new one.
	follow.HasPrev = false
}

// FollowTarget reports the current follow target and distance.
func FollowTarget(w *ecs.World, camera ecs.Entity) (ecs.Entity, float64, bool) {
	follow, ok := ecs.Get(w, camera, component.FollowComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	return ecs.Entity(follow.Target), follow.Offset, true
}
