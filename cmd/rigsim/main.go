// rigsim is a headless driver for skeleton poses and keyframe clips.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rig/internal/anim"
	"github.com/Faultbox/midgard-rig/internal/config"
	"github.com/Faultbox/midgard-rig/internal/logger"
	"github.com/Faultbox/midgard-rig/internal/rig"
	"github.com/Faultbox/midgard-rig/internal/sim"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg.Playback)

	switch command {
	case "tree":
		err = cmdTree(cfg)
	case "sample":
		err = cmdSample(cfg, args)
	case "play":
		err = cmdPlay(cfg)
	case "init":
		err = cmdInit(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rigsim - forward kinematics and keyframe playback

Usage:
  rigsim [flags] <command> [args]

Commands:
  tree              Print the joint hierarchy with solved positions
  sample <time>     Evaluate the clip at a time in seconds
  play              Run the tick loop and print the driven pose per frame
  init [path]       Write the effective config as YAML

Flags:
  -config <file>    Config file (default ./rig.yaml, then the user config dir)
  -debug            Debug logging
  -log-file <file>  Also log to a rotating file
  -speed <s>        Playback speed, negative plays backwards
  -loop, -once      Override looping
  -frames <n>       Ticks to run (default one clip length)
  -rate <hz>        Ticks per simulated second
  -drive <joint>    Joint receiving the clip pose
  -concurrent       Solve independent roots in parallel

Examples:
  rigsim tree
  rigsim -speed -1 sample 2.5
  rigsim -once -rate 10 play
  rigsim init ./rig.yaml`)

	names := make([]string, 0, len(anim.Easings()))
	for _, e := range anim.Easings() {
		names = append(names, e.String())
	}
	fmt.Printf("\nEasings: %s\n", strings.Join(names, ", "))
}

func cmdTree(cfg *config.Config) error {
	s, err := cfg.Scene.BuildSkeleton()
	if err != nil {
		return err
	}
	if err := s.Solve(); err != nil {
		return err
	}

	return s.Walk(func(_, depth int, j *rig.Joint) {
		fmt.Printf("%s%-*s %s\n", strings.Repeat("  ", depth), 24-2*depth, j.Name(), formatVec(j.GlobalMatrix().Translation()))
	})
}

func cmdSample(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rigsim sample <time>")
	}
	t, err := parseTime(args[0])
	if err != nil {
		return err
	}

	clip, err := cfg.Scene.BuildClip()
	if err != nil {
		return err
	}

	direction := float32(1)
	if cfg.Playback.Speed < 0 {
		direction = -1
	}
	pose := clip.Sample(t, direction)

	fmt.Printf("Time:     %.3f / %.3f\n", t, clip.Duration())
	fmt.Printf("Position: %s\n", formatVec(pose.Translation))
	fmt.Printf("Rotation: %s\n", formatVec(pose.Rotation))
	fmt.Printf("Scale:    %s\n", formatVec(pose.Scale))
	return nil
}

func cmdPlay(cfg *config.Config) error {
	s, err := cfg.Scene.BuildSkeleton()
	if err != nil {
		return err
	}
	clip, err := cfg.Scene.BuildClip()
	if err != nil {
		return err
	}

	a := anim.NewAnimator()
	if err := a.SetClip(clip); err != nil {
		return err
	}
	if err := a.SetSpeed(cfg.Playback.Speed); err != nil {
		return err
	}
	a.SetLooping(cfg.Playback.Looping)
	a.Stop()
	if err := a.Play(); err != nil {
		return err
	}

	var opts []sim.Option
	if cfg.Playback.Concurrent {
		opts = append(opts, sim.WithConcurrentSolve())
	}
	d, err := sim.NewDriver(s, a, cfg.Playback.DriveJoint, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames := cfg.Playback.FrameCount(clip.Duration())
	logger.Info("playing clip",
		zap.String("drive", cfg.Playback.DriveJoint),
		zap.Int("frames", frames),
		zap.Int("rate", cfg.Playback.TickRate),
		zap.Float32("speed", a.Speed()),
		zap.Bool("looping", a.Looping()))

	leaves := leafJoints(s)
	err = d.Run(ctx, frames, cfg.Playback.TickDelta(), func(f sim.Frame) error {
		fmt.Printf("%5d t=%6.3f %s", f.Index, f.Time, formatVec(f.Pose.Translation))
		for _, j := range leaves {
			fmt.Printf("  %s=%s", j.Name(), formatVec(j.GlobalMatrix().Translation()))
		}
		fmt.Println()
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("playback done", zap.Int("loops", a.Loops()), zap.Float32("time", a.Time()))
	return nil
}

func cmdInit(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Println(args[0])
		return nil
	}

	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// parseTime reads a sample time in seconds. NaN, infinities, and values
// outside float32 range are rejected.
func parseTime(s string) (float32, error) {
	t, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: parsing %q: %v", anim.ErrInvalidTime, s, err)
	}
	if !math.IsFinite(float32(t)) {
		return 0, fmt.Errorf("%w: %q", anim.ErrInvalidTime, s)
	}
	return float32(t), nil
}

// leafJoints returns joints without children, in hierarchy order.
func leafJoints(s *rig.Skeleton) []*rig.Joint {
	var leaves []*rig.Joint
	_ = s.Walk(func(_, _ int, j *rig.Joint) {
		if len(j.Children()) == 0 {
			leaves = append(leaves, j)
		}
	})
	return leaves
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%7.3f %7.3f %7.3f)", v.X, v.Y, v.Z)
}
