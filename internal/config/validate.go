package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output path is required")
	}
	if len(c.Inputs) == 0 {
		return errors.New("at least one input is required")
	}
	if !slices.Contains(validSizes, c.Size) {
		return fmt.Errorf("invalid size: %d (must be one of %v)", c.Size, validSizes)
	}
	if c.Padding < 0 || c.Padding > maxPadding {
		return fmt.Errorf("invalid padding value: %d (must be between 0 and %d)", c.Padding, maxPadding)
	}
	if c.AlphaThreshold < 0 || c.AlphaThreshold > maxAlphaThreshold {
		return fmt.Errorf("invalid alpha threshold: %d (must be between 0 and %d)", c.AlphaThreshold, maxAlphaThreshold)
	}
	if _, err := c.PackHeuristic(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
