// Package sim drives a skeleton from an animator one tick at a time.
package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rig/internal/anim"
	"github.com/Faultbox/midgard-rig/internal/logger"
	"github.com/Faultbox/midgard-rig/internal/rig"
)

// Driver binds an animator to one joint of a skeleton.
type Driver struct {
	skeleton   *rig.Skeleton
	animator   *anim.Animator
	target     int
	concurrent bool

	metrics *instruments
	frame   int
}

// Option configures a Driver.
type Option func(*Driver)

// WithConcurrentSolve solves independent roots in parallel.
func WithConcurrentSolve() Option {
	return func(d *Driver) {
		d.concurrent = true
	}
}

// Frame is the outcome of one tick.
type Frame struct {
	Index   int
	Time    float32
	Playing bool
	Pose    rig.Transform
}

// NewDriver binds the animator to the named joint. The skeleton is solved
// once so global matrices are valid before the first tick.
func NewDriver(s *rig.Skeleton, a *anim.Animator, target string, opts ...Option) (*Driver, error) {
	idx, ok := s.Index(target)
	if !ok {
		return nil, fmt.Errorf("drive target: %w: %s", rig.ErrJointNotFound, target)
	}

	m, err := newInstruments()
	if err != nil {
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	d := &Driver{skeleton: s, animator: a, target: idx, metrics: m}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.solve(context.Background()); err != nil {
		return nil, err
	}
	return d, nil
}

// Skeleton returns the driven skeleton.
func (d *Driver) Skeleton() *rig.Skeleton {
	return d.skeleton
}

// Animator returns the animator.
func (d *Driver) Animator() *anim.Animator {
	return d.animator
}

// Target returns the driven joint.
func (d *Driver) Target() *rig.Joint {
	return d.skeleton.Joint(d.target)
}

// Tick advances the clock by dt, writes the sampled pose into the target
// joint, and re-solves the hierarchy. A stopped animator still re-solves,
// so transforms edited between ticks are picked up.
func (d *Driver) Tick(ctx context.Context, dt float32) (Frame, error) {
	loops := d.animator.Loops()
	wasPlaying := d.animator.IsPlaying()

	if _, err := d.animator.Advance(dt); err != nil {
		return Frame{}, err
	}
	if wraps := d.animator.Loops() - loops; wraps > 0 {
		d.metrics.wraps.Add(ctx, int64(wraps))
		logger.Debug("playback wrapped", zap.Int("frame", d.frame), zap.Float32("time", d.animator.Time()))
	}
	if wasPlaying && !d.animator.IsPlaying() {
		logger.Info("playback finished", zap.Int("frame", d.frame), zap.Float32("time", d.animator.Time()))
	}

	var pose rig.Transform
	if d.animator.Clip() != nil {
		var err error
		if pose, err = d.animator.Sample(); err != nil {
			return Frame{}, err
		}
		if err := d.Target().SetLocal(pose); err != nil {
			return Frame{}, err
		}
	}

	if err := d.solve(ctx); err != nil {
		return Frame{}, err
	}

	f := Frame{
		Index:   d.frame,
		Time:    d.animator.Time(),
		Playing: d.animator.IsPlaying(),
		Pose:    pose,
	}
	d.frame++
	d.metrics.ticks.Add(ctx, 1)
	return f, nil
}

// Run ticks n times at a fixed dt, calling fn after each tick.
func (d *Driver) Run(ctx context.Context, n int, dt float32, fn func(Frame) error) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := d.Tick(ctx, dt)
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if fn != nil {
			if err := fn(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Driver) solve(ctx context.Context) error {
	start := time.Now()

	var err error
	if d.concurrent {
		err = d.skeleton.SolveConcurrent(ctx)
	} else {
		err = d.skeleton.Solve()
	}
	if err != nil {
		return fmt.Errorf("solving skeleton: %w", err)
	}

	d.metrics.solveTime.Record(ctx, float64(time.Since(start).Microseconds())/1000)
	return nil
}
