package qcircuit

import "time"

// Config carries the tunables of the remote-job subsystem.
type Config struct {
	// PollInterval is how long the poll loop sleeps between sweeps.
	PollInterval time.Duration

	// DefaultShots is the shot count callers may use when they have no
	// opinion of their own. Submit still rejects non-positive values.
	DefaultShots int
}

func NewConfig() *Config {
	return &Config{
		PollInterval: 10 * time.Second,
		DefaultShots: 4096,
	}
}
