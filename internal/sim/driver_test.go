package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-rig/internal/anim"
	"github.com/Faultbox/midgard-rig/internal/rig"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

func splat(f float32) math.Vec3 {
	return math.Vec3{X: f, Y: f, Z: f}
}

func fixture(t *testing.T, loop bool, opts ...Option) *Driver {
	t.Helper()

	s, err := rig.Build([]rig.JointDef{
		{Name: "Hips", Parent: rig.NoParent, Local: rig.Identity()},
		{Name: "Torso", Parent: 0, Local: rig.Transform{Translation: math.Vec3{Y: 2}, Scale: math.Vec3One}},
		{Name: "Lamp", Parent: rig.NoParent, Local: rig.Transform{Translation: math.Vec3{X: 9}, Scale: math.Vec3One}},
	})
	require.NoError(t, err)

	clip, err := anim.NewClip(2,
		[]anim.Vec3Key{anim.Key(0, splat(0)), anim.Key(2, splat(2))},
		nil,
		[]anim.Vec3Key{anim.Key(0, math.Vec3One)},
	)
	require.NoError(t, err)

	a := anim.NewAnimator()
	require.NoError(t, a.SetClip(clip))
	a.SetLooping(loop)
	require.NoError(t, a.Play())

	d, err := NewDriver(s, a, "Hips", opts...)
	require.NoError(t, err)
	return d
}

func TestNewDriverUnknownTarget(t *testing.T) {
	s, err := rig.Build([]rig.JointDef{{Name: "Hips", Parent: rig.NoParent, Local: rig.Identity()}})
	require.NoError(t, err)

	_, err = NewDriver(s, anim.NewAnimator(), "Tail")
	assert.ErrorIs(t, err, rig.ErrJointNotFound)
}

func TestNewDriverSolvesUpFront(t *testing.T) {
	d := fixture(t, true)
	torso, _ := d.Skeleton().Find("Torso")
	assert.Equal(t, math.Vec3{Y: 2}, torso.GlobalMatrix().Translation())
}

func TestTickPropagatesToChildren(t *testing.T) {
	d := fixture(t, true)

	f, err := d.Tick(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 0, f.Index)
	assert.Equal(t, float32(1), f.Time)
	assert.True(t, f.Playing)
	assert.Equal(t, splat(1), f.Pose.Translation)

	assert.Equal(t, splat(1), d.Target().Local().Translation)
	torso, _ := d.Skeleton().Find("Torso")
	assert.Equal(t, math.Vec3{X: 1, Y: 3, Z: 1}, torso.GlobalMatrix().Translation())

	lamp, _ := d.Skeleton().Find("Lamp")
	assert.Equal(t, math.Vec3{X: 9}, lamp.GlobalMatrix().Translation())
}

func TestTickStopsAtEnd(t *testing.T) {
	d := fixture(t, false)

	var frames []Frame
	err := d.Run(context.Background(), 4, 1, func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, frames, 4)

	assert.True(t, frames[0].Playing)
	assert.False(t, frames[2].Playing)
	assert.Equal(t, float32(2), frames[3].Time)
	assert.Equal(t, 3, frames[3].Index)
	assert.Equal(t, splat(2), d.Target().Local().Translation)
}

func TestTickLoopsSmoothly(t *testing.T) {
	d := fixture(t, true)

	_, err := d.Tick(context.Background(), 1.5)
	require.NoError(t, err)
	f, err := d.Tick(context.Background(), 1)
	require.NoError(t, err)

	// 2.5 is past the end: (2.5 + 1) - 2.
	assert.Equal(t, float32(1.5), f.Time)
	assert.Equal(t, 1, d.Animator().Loops())
}

func TestTickRejectsNegativeDelta(t *testing.T) {
	d := fixture(t, true)
	_, err := d.Tick(context.Background(), -1)
	assert.ErrorIs(t, err, anim.ErrInvalidDelta)
}

func TestTickPicksUpManualEdits(t *testing.T) {
	d := fixture(t, true)
	d.Animator().Pause()

	lamp, _ := d.Skeleton().Find("Lamp")
	require.NoError(t, lamp.SetTranslation(math.Vec3{X: -4}))

	_, err := d.Tick(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: -4}, lamp.GlobalMatrix().Translation())
}

func TestConcurrentDriverMatchesSequential(t *testing.T) {
	seq := fixture(t, true)
	par := fixture(t, true, WithConcurrentSolve())

	for i := 0; i < 5; i++ {
		_, err := seq.Tick(context.Background(), 0.3)
		require.NoError(t, err)
		_, err = par.Tick(context.Background(), 0.3)
		require.NoError(t, err)
	}

	for i := 0; i < seq.Skeleton().Len(); i++ {
		assert.Equal(t, seq.Skeleton().Joint(i).GlobalMatrix(), par.Skeleton().Joint(i).GlobalMatrix())
	}
}

func TestRunStopsOnCallbackError(t *testing.T) {
	d := fixture(t, true)
	stop := errors.New("stop")

	calls := 0
	err := d.Run(context.Background(), 10, 0.1, func(Frame) error {
		calls++
		if calls == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, calls)
}

func TestRunCanceled(t *testing.T) {
	d := fixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx, 3, 0.1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
