package config

import (
	"os"
	"time"

	"github.com/rickgao/kalshi-oracle/internal/api"
)

// Default values for optional configuration fields.
const (
	DefaultRestURL      = api.ProductionURL
	DefaultAPITimeout   = 30 * time.Second
	DefaultLogVerbosity = "bid"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 2
	DefaultMinConns     = 0
	DefaultNodes        = 1
)

func (c *PhaseConfig) applyDefaults() {
	// Instance defaults
	if c.Instance.ID == "" {
		if host, err := os.Hostname(); err == nil && host != "" {
			c.Instance.ID = host
		} else {
			c.Instance.ID = "local"
		}
	}

	// API defaults
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	// Phase defaults
	if c.Phase.LogVerbosity == "" {
		c.Phase.LogVerbosity = DefaultLogVerbosity
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}

	// Journal defaults
	applyDBDefaults(&c.Journal.Database)

	// Simulate defaults
	if c.Simulate.Nodes == 0 {
		c.Simulate.Nodes = DefaultNodes
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
