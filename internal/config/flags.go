package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagTicks    = flag.Int("ticks", -1, "Number of ticks to simulate (0 runs until interrupted)")
	flagTickRate = flag.Float64("tick-rate", 0, "Simulation tick rate in Hz")
	flagWorkers  = flag.Int("workers", -1, "Surface evaluation workers (0 = one per CPU)")
	flagGrid     = flag.Int("grid", 0, "Surface grid size (vertices per side)")
	flagRealtime = flag.Bool("realtime", false, "Pace ticks in wall-clock time")
	flagNoMesh   = flag.Bool("no-mesh", false, "Skip surface mesh updates")
	flagOnMesh   = flag.Bool("sample-mesh", false, "Float bodies on the mesh instead of the analytic waves")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
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
	if *flagTicks >= 0 {
		cfg.Simulation.Ticks = *flagTicks
	}
	if *flagTickRate > 0 {
		cfg.Simulation.TickRate = *flagTickRate
	}
	if *flagWorkers >= 0 {
		cfg.Surface.Workers = *flagWorkers
	}
	if *flagGrid > 0 {
		cfg.Surface.GridSize = *flagGrid
	}
	if *flagRealtime {
		cfg.Simulation.Realtime = true
	}
	if *flagOnMesh {
		cfg.Surface.SampleMesh = true
	}
	if *flagNoMesh {
		cfg.Surface.Enabled = false
		cfg.Surface.SampleMesh = false
	}
}
