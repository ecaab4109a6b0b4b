package rig

import "errors"

var (
	ErrCycleDetected  = errors.New("joint hierarchy contains a cycle")
	ErrInvalidParent  = errors.New("invalid parent index")
	ErrDuplicateJoint = errors.New("duplicate joint name")
	ErrEmptyName      = errors.New("joint name is empty")
	ErrNonFinite      = errors.New("transform has non-finite component")
	ErrJointNotFound  = errors.New("joint not found")
)
