package anim

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Easing selects the reparameterization applied to segment progress.
// Formulas follow easings.net.
type Easing uint8

const (
	EaseNone Easing = iota
	EaseInOutElastic
	EaseInSine
	EaseOutBack

	easingCount
)

var easingNames = [easingCount]string{
	EaseNone:         "none",
	EaseInOutElastic: "in_out_elastic",
	EaseInSine:       "in_sine",
	EaseOutBack:      "out_back",
}

const (
	elasticC5 = (2 * math32.Pi) / 4.5
	backC1    = 1.70158
	backC3    = backC1 + 1
)

// Easings returns every known easing in selector order.
func Easings() []Easing {
	out := make([]Easing, easingCount)
	for i := range out {
		out[i] = Easing(i)
	}
	return out
}

// Valid reports whether e is a known selector.
func (e Easing) Valid() bool {
	return e < easingCount
}

// String returns the config name of the easing.
func (e Easing) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Easing(%d)", uint8(e))
	}
	return easingNames[e]
}

// ParseEasing resolves a config name. The empty string means EaseNone.
func ParseEasing(name string) (Easing, error) {
	if name == "" {
		return EaseNone, nil
	}
	for i, n := range easingNames {
		if n == name {
			return Easing(i), nil
		}
	}
	return EaseNone, fmt.Errorf("%w: %q", ErrInvalidEasing, name)
}

// Apply maps progress x in [0,1]. Results may leave [0,1] for
// overshooting easings.
func (e Easing) Apply(x float32) (float32, error) {
	if !e.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidEasing, uint8(e))
	}
	return e.apply(x), nil
}

// apply assumes e is valid.
func (e Easing) apply(x float32) float32 {
	switch e {
	case EaseInOutElastic:
		return easeInOutElastic(x)
	case EaseInSine:
		return 1 - math32.Cos(x*math32.Pi/2)
	case EaseOutBack:
		d := x - 1
		return 1 + backC3*d*d*d + backC1*d*d
	default:
		return x
	}
}

func easeInOutElastic(x float32) float32 {
	switch {
	case x == 0:
		return 0
	case x == 1:
		return 1
	case x < 0.5:
		return -(math32.Pow(2, 20*x-10) * math32.Sin((20*x-11.125)*elasticC5)) / 2
	default:
		return (math32.Pow(2, -20*x+10)*math32.Sin((20*x-11.125)*elasticC5))/2 + 1
	}
}
