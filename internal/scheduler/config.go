package scheduler

import "time"

// Config controls janitor intervals and retention windows.
type Config struct {
	RunInterval        time.Duration
	JobTimeout         time.Duration
	TelemetryRetention time.Duration
}

func DefaultConfig() Config {
	return Config{
		RunInterval:        15 * time.Minute,
		JobTimeout:         time.Minute,
		TelemetryRetention: 30 * 24 * time.Hour,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	if c.TelemetryRetention <= 0 {
		c.TelemetryRetention = defaults.TelemetryRetention
	}
	return c
}
