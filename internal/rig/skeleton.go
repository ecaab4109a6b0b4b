// Package rig implements joint hierarchies and forward kinematics.
package rig

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rig/internal/logger"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// JointDef describes one joint at build time.
// Parent is an index into the same definition slice, or NoParent.
type JointDef struct {
	Name   string
	Parent int
	Local  Transform
}

// Skeleton owns a fixed set of joints stored contiguously.
// Topology never changes after Build; only local transforms are mutable.
type Skeleton struct {
	joints []Joint
	byName map[string]int

	// Traversal plan, derived once from the immutable topology.
	planned  bool
	subtrees [][]int
	depths   []int
	planErr  error
}

// Build creates a skeleton from joint definitions.
// Parents may reference any index, including later ones; a parent graph that
// is not a forest is reported by Solve as ErrCycleDetected.
func Build(defs []JointDef) (*Skeleton, error) {
	s := &Skeleton{
		joints: make([]Joint, len(defs)),
		byName: make(map[string]int, len(defs)),
	}

	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("joint %d: %w", i, ErrEmptyName)
		}
		if _, dup := s.byName[def.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateJoint, def.Name)
		}
		if def.Parent != NoParent && (def.Parent < 0 || def.Parent >= len(defs) || def.Parent == i) {
			return nil, fmt.Errorf("joint %s: %w: %d", def.Name, ErrInvalidParent, def.Parent)
		}
		if err := def.Local.Validate(); err != nil {
			return nil, fmt.Errorf("joint %s: %w", def.Name, err)
		}

		s.byName[def.Name] = i
		s.joints[i] = Joint{
			name:         def.Name,
			parent:       def.Parent,
			local:        def.Local,
			localMatrix:  math.Identity(),
			globalMatrix: math.Identity(),
		}
	}

	for i := range s.joints {
		if p := s.joints[i].parent; p != NoParent {
			s.joints[p].children = append(s.joints[p].children, i)
		}
	}

	logger.Debug("skeleton built", zap.Int("joints", len(s.joints)))
	return s, nil
}

// Len returns the number of joints.
func (s *Skeleton) Len() int {
	return len(s.joints)
}

// Joint returns the joint at index i, or nil if out of range.
func (s *Skeleton) Joint(i int) *Joint {
	if i < 0 || i >= len(s.joints) {
		return nil
	}
	return &s.joints[i]
}

// Index returns the index of the named joint.
func (s *Skeleton) Index(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Find returns the named joint.
func (s *Skeleton) Find(name string) (*Joint, error) {
	i, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJointNotFound, name)
	}
	return &s.joints[i], nil
}

// Joints returns all joints in insertion order.
func (s *Skeleton) Joints() []*Joint {
	out := make([]*Joint, len(s.joints))
	for i := range s.joints {
		out[i] = &s.joints[i]
	}
	return out
}

// Roots returns the indices of joints without a parent, in insertion order.
func (s *Skeleton) Roots() []int {
	var roots []int
	for i := range s.joints {
		if s.joints[i].parent == NoParent {
			roots = append(roots, i)
		}
	}
	return roots
}

// Walk visits joints in solve order (pre-order from each root).
func (s *Skeleton) Walk(fn func(index, depth int, j *Joint)) error {
	subtrees, err := s.plan()
	if err != nil {
		return err
	}
	for _, tree := range subtrees {
		for _, idx := range tree {
			fn(idx, s.depths[idx], &s.joints[idx])
		}
	}
	return nil
}

// plan derives the pre-order traversal of every root's subtree.
// Joints that are revisited or unreachable from any root sit on a cycle.
func (s *Skeleton) plan() ([][]int, error) {
	if s.planned {
		return s.subtrees, s.planErr
	}
	s.planned = true

	visited := make([]bool, len(s.joints))
	s.depths = make([]int, len(s.joints))
	seen := 0

	for _, root := range s.Roots() {
		var tree []int
		stack := []int{root}
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if visited[idx] {
				s.subtrees = nil
				s.planErr = fmt.Errorf("%w: joint %s visited twice", ErrCycleDetected, s.joints[idx].name)
				return nil, s.planErr
			}
			visited[idx] = true
			seen++
			tree = append(tree, idx)

			// Push in reverse so children pop in insertion order.
			children := s.joints[idx].children
			for c := len(children) - 1; c >= 0; c-- {
				s.depths[children[c]] = s.depths[idx] + 1
				stack = append(stack, children[c])
			}
		}
		s.subtrees = append(s.subtrees, tree)
	}

	if seen != len(s.joints) {
		for i := range visited {
			if !visited[i] {
				s.subtrees = nil
				s.planErr = fmt.Errorf("%w: joint %s is unreachable from any root", ErrCycleDetected, s.joints[i].name)
				return nil, s.planErr
			}
		}
	}

	return s.subtrees, nil
}
