package config

import "time"

// PhaseConfig is the root configuration for the execution phase harness.
type PhaseConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	API      APIConfig      `yaml:"api"`
	Phase    PhaseOptions   `yaml:"phase"`
	Log      LogConfig      `yaml:"log"`
	Journal  JournalConfig  `yaml:"journal"`
	Simulate SimulateConfig `yaml:"simulate"`
}

// InstanceConfig identifies this node.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds Kalshi API settings for the host fetch capability.
type APIConfig struct {
	RestURL string        `yaml:"rest_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// PhaseOptions holds the phase's own knobs.
type PhaseOptions struct {
	PinnedTicker string `yaml:"pinned_ticker"` // overrides host input when set
	LogVerbosity string `yaml:"log_verbosity"` // "bid" or "full"
}

// LogConfig holds slog handler settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// JournalConfig holds the optional Postgres outcome journal.
type JournalConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Database DBConfig `yaml:"database"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SimulateConfig controls the local multi-node run.
type SimulateConfig struct {
	Nodes int `yaml:"nodes"`
}
