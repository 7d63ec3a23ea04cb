package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orrery/common"
)

// minPolar keeps the camera off the poles so the look-at basis stays defined.
const minPolar = 0.01

// OrbitAround rotates pos about center: yaw turns around up, pitch moves the
// camera away from up (positive pitch lowers the camera). The distance to
// center is preserved.
func OrbitAround(pos, center, up mgl64.Vec3, yaw, pitch float64) mgl64.Vec3 {
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}
	up = up.Normalize()

	offset := pos.Sub(center)
	r := offset.Len()
	if r <= degenerateEpsilon {
		return pos
	}

	if yaw != 0 {
		offset = mgl64.QuatRotate(yaw, up).Rotate(offset)
	}

	if pitch != 0 {
		axis := up.Cross(offset)
		if axis.Len() > degenerateEpsilon {
			polar := math.Acos(common.Clamp(offset.Dot(up)/r, -1, 1))
			target := common.Clamp(polar+pitch, minPolar, math.Pi-minPolar)
			offset = mgl64.QuatRotate(target-polar, axis.Normalize()).Rotate(offset)
		}
	}

	return center.Add(offset)
}
