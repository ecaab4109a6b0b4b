package rig

import (
	"fmt"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// Transform is a local pose: translation, Euler rotation in degrees, and scale.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Vec3
	Scale       math.Vec3
}

// Identity returns a transform with no translation or rotation and unit scale.
func Identity() Transform {
	return Transform{Scale: math.Vec3One}
}

// Matrix composes Translate(T) * RotateZ * RotateY * RotateX * Scale(S).
// Zero scale yields a singular matrix; that is not treated as an error.
func (t Transform) Matrix() math.Mat4 {
	return math.Translate(t.Translation).
		Mul(math.EulerXYZ(t.Rotation)).
		Mul(math.Scale(t.Scale))
}

// Validate rejects NaN or infinite components.
func (t Transform) Validate() error {
	switch {
	case !t.Translation.IsFinite():
		return fmt.Errorf("%w: translation %v", ErrNonFinite, t.Translation)
	case !t.Rotation.IsFinite():
		return fmt.Errorf("%w: rotation %v", ErrNonFinite, t.Rotation)
	case !t.Scale.IsFinite():
		return fmt.Errorf("%w: scale %v", ErrNonFinite, t.Scale)
	}
	return nil
}
