package rig

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Solve recomputes local and global matrices for every joint.
// Parents are always finalized before their children. On ErrCycleDetected
// no matrix is touched, so results from earlier solves remain readable.
func Solve(s *Skeleton) error {
	subtrees, err := s.plan()
	if err != nil {
		return err
	}
	for _, tree := range subtrees {
		s.solveTree(tree)
	}
	return nil
}

// Solve is shorthand for rig.Solve(s).
func (s *Skeleton) Solve() error {
	return Solve(s)
}

// SolveConcurrent solves each root's subtree in its own goroutine.
// Subtrees share no matrices, so the result matches Solve exactly.
func (s *Skeleton) SolveConcurrent(ctx context.Context) error {
	subtrees, err := s.plan()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, tree := range subtrees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.solveTree(tree)
			return nil
		})
	}
	return g.Wait()
}

// solveTree walks one pre-ordered subtree.
func (s *Skeleton) solveTree(tree []int) {
	for _, idx := range tree {
		j := &s.joints[idx]
		j.localMatrix = j.local.Matrix()
		if j.parent == NoParent {
			j.globalMatrix = j.localMatrix
			continue
		}
		j.globalMatrix = s.joints[j.parent].globalMatrix.Mul(j.localMatrix)
	}
}
