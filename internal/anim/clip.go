package anim

import (
	"fmt"

	"github.com/Faultbox/midgard-rig/internal/rig"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// Channel names one of the three curves of a clip.
type Channel int

const (
	ChannelPosition Channel = iota
	ChannelRotation
	ChannelScale

	channelCount
)

func (ch Channel) String() string {
	switch ch {
	case ChannelPosition:
		return "position"
	case ChannelRotation:
		return "rotation"
	case ChannelScale:
		return "scale"
	}
	return fmt.Sprintf("Channel(%d)", int(ch))
}

// Clip bundles position, Euler rotation, and scale curves over one duration.
// Curves are independent: lengths and key times need not match.
type Clip struct {
	duration float32
	curves   [channelCount]Curve
}

// NewClip builds a clip from raw key lists.
func NewClip(duration float32, position, rotation, scale []Vec3Key) (*Clip, error) {
	c := &Clip{}
	if err := c.SetDuration(duration); err != nil {
		return nil, err
	}
	for ch, keys := range [channelCount][]Vec3Key{position, rotation, scale} {
		if err := c.SetKeys(Channel(ch), keys); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Duration returns the nominal clip length in seconds.
func (c *Clip) Duration() float32 {
	return c.duration
}

// SetDuration changes the clip length.
func (c *Clip) SetDuration(d float32) error {
	if !math.IsFinite(d) || d <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, d)
	}
	c.duration = d
	return nil
}

// Curve returns the curve for a channel.
func (c *Clip) Curve(ch Channel) (Curve, error) {
	if ch < 0 || ch >= channelCount {
		return Curve{}, fmt.Errorf("%w: %d", ErrInvalidChannel, int(ch))
	}
	return c.curves[ch], nil
}

// Keys returns a copy of a channel's keys in time order.
func (c *Clip) Keys(ch Channel) ([]Vec3Key, error) {
	curve, err := c.Curve(ch)
	if err != nil {
		return nil, err
	}
	return curve.Keys(), nil
}

// SetKeys replaces a channel's keys. On error the channel is unchanged.
func (c *Clip) SetKeys(ch Channel, keys []Vec3Key) error {
	if ch < 0 || ch >= channelCount {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, int(ch))
	}
	curve, err := NewCurve(keys)
	if err != nil {
		return fmt.Errorf("%s curve: %w", ch, err)
	}
	c.curves[ch] = curve
	return nil
}

// SetKey replaces the i-th key (in time order) of a channel and re-sorts.
func (c *Clip) SetKey(ch Channel, i int, key Vec3Key) error {
	keys, err := c.Keys(ch)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(keys) {
		return fmt.Errorf("%w: %s index %d out of range [0,%d)", ErrInvalidKey, ch, i, len(keys))
	}
	keys[i] = key
	return c.SetKeys(ch, keys)
}

// Sample evaluates all three curves at t.
func (c *Clip) Sample(t, direction float32) rig.Transform {
	return rig.Transform{
		Translation: c.curves[ChannelPosition].Evaluate(t, direction),
		Rotation:    c.curves[ChannelRotation].Evaluate(t, direction),
		Scale:       c.curves[ChannelScale].Evaluate(t, direction),
	}
}
