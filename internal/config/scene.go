package config

import (
	"fmt"

	"github.com/Faultbox/midgard-rig/internal/anim"
	"github.com/Faultbox/midgard-rig/internal/rig"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// SceneConfig describes a skeleton and the clip that drives it.
type SceneConfig struct {
	Joints []JointConfig `yaml:"joints"`
	Clip   ClipConfig    `yaml:"clip"`
}

// JointConfig is one joint. Parent names an earlier or later joint; empty
// means root. Scale defaults to (1,1,1) when omitted.
type JointConfig struct {
	Name     string      `yaml:"name"`
	Parent   string      `yaml:"parent,omitempty"`
	Position [3]float32  `yaml:"position"`
	Rotation [3]float32  `yaml:"rotation"`
	Scale    *[3]float32 `yaml:"scale,omitempty"`
}

// ClipConfig holds the three key lists of a clip.
type ClipConfig struct {
	Duration float32     `yaml:"duration"`
	Position []KeyConfig `yaml:"position"`
	Rotation []KeyConfig `yaml:"rotation"`
	Scale    []KeyConfig `yaml:"scale"`
}

// KeyConfig is one key; Easing takes an anim easing name.
type KeyConfig struct {
	Time   float32    `yaml:"time"`
	Value  [3]float32 `yaml:"value"`
	Easing string     `yaml:"easing,omitempty"`
}

// BuildSkeleton resolves parent names and builds the skeleton.
func (s SceneConfig) BuildSkeleton() (*rig.Skeleton, error) {
	index := make(map[string]int, len(s.Joints))
	for i, j := range s.Joints {
		if _, dup := index[j.Name]; !dup {
			index[j.Name] = i
		}
	}

	defs := make([]rig.JointDef, len(s.Joints))
	for i, j := range s.Joints {
		parent := rig.NoParent
		if j.Parent != "" {
			p, ok := index[j.Parent]
			if !ok {
				return nil, fmt.Errorf("joint %s: %w: unknown parent %s", j.Name, rig.ErrInvalidParent, j.Parent)
			}
			parent = p
		}

		local := rig.Transform{
			Translation: math.Vec3From(j.Position),
			Rotation:    math.Vec3From(j.Rotation),
			Scale:       math.Vec3One,
		}
		if j.Scale != nil {
			local.Scale = math.Vec3From(*j.Scale)
		}

		defs[i] = rig.JointDef{Name: j.Name, Parent: parent, Local: local}
	}

	return rig.Build(defs)
}

// BuildClip converts the key lists into a clip.
func (s SceneConfig) BuildClip() (*anim.Clip, error) {
	var channels [3][]anim.Vec3Key
	for ch, keys := range [3][]KeyConfig{s.Clip.Position, s.Clip.Rotation, s.Clip.Scale} {
		out := make([]anim.Vec3Key, len(keys))
		for i, k := range keys {
			easing, err := anim.ParseEasing(k.Easing)
			if err != nil {
				return nil, fmt.Errorf("%s key %d: %w", anim.Channel(ch), i, err)
			}
			out[i] = anim.Vec3Key{Time: k.Time, Value: math.Vec3From(k.Value), Easing: easing}
		}
		channels[ch] = out
	}
	return anim.NewClip(s.Clip.Duration, channels[0], channels[1], channels[2])
}

// firstRoot returns the name of the first joint without a parent.
func (s SceneConfig) firstRoot() string {
	for _, j := range s.Joints {
		if j.Parent == "" {
			return j.Name
		}
	}
	return ""
}

func splat(f float32) [3]float32 {
	return [3]float32{f, f, f}
}

func limb(scale float32) *[3]float32 {
	s := splat(scale)
	return &s
}

// DefaultScene is a twelve joint humanoid driven from the hips by a seven
// second clip.
func DefaultScene() SceneConfig {
	return SceneConfig{
		Joints: []JointConfig{
			{Name: "Hips", Position: [3]float32{0, 2, 0}},
			{Name: "Torso", Parent: "Hips", Position: [3]float32{0, 2, 0}, Scale: limb(1.2)},
			{Name: "Shoulder_R", Parent: "Torso", Position: [3]float32{1.5, 0, 0}, Scale: limb(0.7)},
			{Name: "Shoulder_L", Parent: "Torso", Position: [3]float32{-1.5, 0, 0}, Scale: limb(0.7)},
			{Name: "Knee_R", Parent: "Hips", Position: [3]float32{1, -1, 0}, Scale: limb(0.7)},
			{Name: "Knee_L", Parent: "Hips", Position: [3]float32{-1, -1, 0}, Scale: limb(0.7)},
			{Name: "Elbow_R", Parent: "Shoulder_R", Position: [3]float32{1.3, 0, 0}, Scale: limb(0.7)},
			{Name: "Elbow_L", Parent: "Shoulder_L", Position: [3]float32{-1.3, 0, 0}, Scale: limb(0.7)},
			{Name: "Wrist_R", Parent: "Elbow_R", Position: [3]float32{1.3, 0, 0}, Scale: limb(0.7)},
			{Name: "Wrist_L", Parent: "Elbow_L", Position: [3]float32{-1.3, 0, 0}, Scale: limb(0.7)},
			{Name: "Ankle_R", Parent: "Knee_R", Position: [3]float32{0.1, -1.5, 0}, Scale: limb(0.7)},
			{Name: "Ankle_L", Parent: "Knee_L", Position: [3]float32{-0.1, -1.5, 0}, Scale: limb(0.7)},
		},
		Clip: ClipConfig{
			Duration: 7,
			Position: []KeyConfig{
				{Time: 0, Value: splat(0)},
				{Time: 2, Value: splat(2)},
				{Time: 5, Value: splat(1)},
				{Time: 7, Value: splat(3)},
			},
			Rotation: []KeyConfig{
				{Time: 0, Value: splat(0)},
				{Time: 7, Value: splat(3)},
			},
			Scale: []KeyConfig{
				{Time: 0, Value: splat(1)},
				{Time: 2, Value: splat(5)},
				{Time: 5, Value: [3]float32{2, 1, 2}},
				{Time: 7, Value: splat(3)},
			},
		},
	}
}
