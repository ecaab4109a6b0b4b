package anim

import "errors"

var (
	ErrInvalidEasing   = errors.New("invalid easing selector")
	ErrInvalidKey      = errors.New("invalid keyframe")
	ErrInvalidDelta    = errors.New("delta time must be finite and non-negative")
	ErrInvalidDuration = errors.New("clip duration must be finite and positive")
	ErrInvalidChannel  = errors.New("invalid clip channel")
	ErrInvalidSpeed    = errors.New("playback speed must be finite")
	ErrInvalidTime     = errors.New("playback time must be finite")
	ErrNoClip          = errors.New("animator has no clip")
)
