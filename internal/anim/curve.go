package anim

import (
	"fmt"
	"slices"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// Vec3Key is a timestamped vector sample. Easing shapes the segment that
// leaves this key; the easing of the key it arrives at is not consulted.
// A negative Time marks an unset key.
type Vec3Key struct {
	Time   float32
	Value  math.Vec3
	Easing Easing
}

// Key is shorthand for a linear key.
func Key(time float32, value math.Vec3) Vec3Key {
	return Vec3Key{Time: time, Value: value}
}

// IsSet reports whether the key carries a usable time.
func (k Vec3Key) IsSet() bool {
	return k.Time >= 0
}

// Validate checks the easing selector and rejects non-finite data.
func (k Vec3Key) Validate() error {
	if !k.Easing.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidEasing, uint8(k.Easing))
	}
	if !math.IsFinite(k.Time) || !k.Value.IsFinite() {
		return fmt.Errorf("%w: time=%v value=%v", ErrInvalidKey, k.Time, k.Value)
	}
	return nil
}

// Curve is an evaluation-ready key list: unset keys removed, the rest
// validated and ordered by time. Keys sharing a time keep input order.
type Curve struct {
	keys []Vec3Key
}

// NewCurve drops unset keys, then validates and sorts the rest.
func NewCurve(keys []Vec3Key) (Curve, error) {
	out := make([]Vec3Key, 0, len(keys))
	for i, k := range keys {
		if math.IsFinite(k.Time) && !k.IsSet() {
			continue
		}
		if err := k.Validate(); err != nil {
			return Curve{}, fmt.Errorf("key %d: %w", i, err)
		}
		out = append(out, k)
	}
	slices.SortStableFunc(out, func(a, b Vec3Key) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return Curve{keys: out}, nil
}

// Len returns the number of keys.
func (c Curve) Len() int {
	return len(c.keys)
}

// Keys returns a copy of the ordered keys.
func (c Curve) Keys() []Vec3Key {
	return slices.Clone(c.keys)
}

// Evaluate samples the curve at time t. A negative direction scans the
// keys from the end, as during reverse playback. Times outside the keyed
// range clamp to the nearest end key; an empty curve yields the zero vector.
func (c Curve) Evaluate(t, direction float32) math.Vec3 {
	keys := c.keys
	switch len(keys) {
	case 0:
		return math.Vec3{}
	case 1:
		return keys[0].Value
	}

	var cur, next Vec3Key
	if direction >= 0 {
		i := slices.IndexFunc(keys, func(k Vec3Key) bool { return k.Time >= t })
		if i < 0 {
			return keys[len(keys)-1].Value
		}
		if i == 0 || keys[i].Time == t {
			return keys[i].Value
		}
		cur, next = keys[i-1], keys[i]
	} else {
		i := len(keys) - 1
		for i >= 0 && keys[i].Time > t {
			i--
		}
		if i < 0 {
			return keys[0].Value
		}
		if i == len(keys)-1 || keys[i].Time == t {
			return keys[i].Value
		}
		cur, next = keys[i+1], keys[i]
	}

	span := next.Time - cur.Time
	if span == 0 {
		// Shared timestamps step straight to the next key.
		return next.Value
	}
	u := (t - cur.Time) / span
	return cur.Value.Lerp(next.Value, cur.Easing.apply(u))
}
