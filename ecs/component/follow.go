package component

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// FollowMode selects where the follow direction is measured from.
type FollowMode int

const (
	// FollowCamera measures from the previous camera position to the
	// current target position, so the viewing axis lags one frame.
	FollowCamera FollowMode = iota
	// FollowOffset carries the camera along with the target's motion first
	// and measures from the previous target-relative offset.
	FollowOffset
)

func (m FollowMode) String() string {
	switch m {
	case FollowOffset:
		return "offset"
	default:
		return "camera"
	}
}

// ParseFollowMode accepts "camera" (or "") and "offset".
func ParseFollowMode(s string) (FollowMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "camera":
		return FollowCamera, nil
	case "offset":
		return FollowOffset, nil
	default:
		return FollowCamera, fmt.Errorf("unknown follow mode %q", s)
	}
}

// Follow is the camera's follow state. Target is an ecs.Entity (uint64).
type Follow struct {
	Target uint64
	Offset float64
	Mode   FollowMode

	// Fallback is used when the camera sits on the target and no previous
	// direction exists.
	Fallback mgl64.Vec3

	LastDir    mgl64.Vec3
	HasDir     bool
	PrevTarget mgl64.Vec3
	HasPrev    bool
}

var FollowComponent = NewComponent[Follow]()
