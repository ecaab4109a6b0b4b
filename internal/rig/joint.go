package rig

import (
	"fmt"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// NoParent marks a root joint.
const NoParent = -1

// Joint is a node in a Skeleton. Parent and children are indices into the
// owning skeleton's joint slice; they are fixed when the skeleton is built.
type Joint struct {
	name     string
	parent   int
	children []int

	local        Transform
	localMatrix  math.Mat4
	globalMatrix math.Mat4
}

// Name returns the joint name.
func (j *Joint) Name() string {
	return j.name
}

// Parent returns the parent index, or false for a root.
func (j *Joint) Parent() (int, bool) {
	if j.parent == NoParent {
		return NoParent, false
	}
	return j.parent, true
}

// IsRoot reports whether the joint has no parent.
func (j *Joint) IsRoot() bool {
	return j.parent == NoParent
}

// Children returns the child indices in insertion order.
func (j *Joint) Children() []int {
	out := make([]int, len(j.children))
	copy(out, j.children)
	return out
}

// Local returns the local transform.
func (j *Joint) Local() Transform {
	return j.local
}

// SetLocal replaces the local transform. Matrices stay stale until the next solve.
func (j *Joint) SetLocal(t Transform) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("joint %s: %w", j.name, err)
	}
	j.local = t
	return nil
}

// SetTranslation replaces the local translation.
func (j *Joint) SetTranslation(v math.Vec3) error {
	t := j.local
	t.Translation = v
	return j.SetLocal(t)
}

// SetRotation replaces the local Euler rotation (degrees).
func (j *Joint) SetRotation(v math.Vec3) error {
	t := j.local
	t.Rotation = v
	return j.SetLocal(t)
}

// SetScale replaces the local scale.
func (j *Joint) SetScale(v math.Vec3) error {
	t := j.local
	t.Scale = v
	return j.SetLocal(t)
}

// LocalMatrix returns the matrix computed by the last solve.
func (j *Joint) LocalMatrix() math.Mat4 {
	return j.localMatrix
}

// GlobalMatrix returns the model matrix computed by the last solve.
func (j *Joint) GlobalMatrix() math.Mat4 {
	return j.globalMatrix
}
