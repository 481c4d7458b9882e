package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDub(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDub() error {
	if c.Dub.StretchMin >= c.Dub.StretchMax {
		return fmt.Errorf("dub.stretch_min (%.2f) must be below dub.stretch_max (%.2f)", c.Dub.StretchMin, c.Dub.StretchMax)
	}
	if c.Dub.StretchMin <= 0.5 || c.Dub.StretchMax >= 2.0 {
		// atempo only supports 0.5-2.0 in a single pass; staying inside keeps
		// the stretch a single filter invocation.
		return errors.New("dub stretch bounds must stay within (0.5, 2.0)")
	}
	if c.Dub.SynthWorkers < 1 || c.Dub.SynthWorkers > 64 {
		return errors.New("dub.synth_workers must be between 1 and 64")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
