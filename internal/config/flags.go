package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log-file", "", "Write logs to a rotating file")
	flagSpeed      = flag.Float64("speed", 1, "Playback speed (negative plays backwards)")
	flagOnce       = flag.Bool("once", false, "Play the clip once instead of looping")
	flagLoop       = flag.Bool("loop", false, "Loop the clip")
	flagFrames     = flag.Int("frames", 0, "Number of ticks to simulate")
	flagRate       = flag.Int("rate", 0, "Ticks per simulated second")
	flagDrive      = flag.String("drive", "", "Joint driven by the clip")
	flagConcurrent = flag.Bool("concurrent", false, "Solve independent roots concurrently")
)

// flagsSet records the flags given on the command line, so zero values
// can still override the config.
var flagsSet = map[string]bool{}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if flagsSet["speed"] {
		cfg.Playback.Speed = float32(*flagSpeed)
	}
	if *flagLoop {
		cfg.Playback.Looping = true
	}
	if *flagOnce {
		cfg.Playback.Looping = false
	}
	if *flagFrames > 0 {
		cfg.Playback.Frames = *flagFrames
	}
	if *flagRate > 0 {
		cfg.Playback.TickRate = *flagRate
	}
	if *flagDrive != "" {
		cfg.Playback.DriveJoint = *flagDrive
	}
	if *flagConcurrent {
		cfg.Playback.Concurrent = true
	}
}
