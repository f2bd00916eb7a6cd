package config

import "crunch2d/rectpack"

const (
	defaultSize      = rectpack.DefaultSize
	defaultPadding   = 1
	defaultHeuristic = "BestAreaFit"
	defaultSplit     = "ShorterLeftoverAxis"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	maxPadding        = 16
	maxAlphaThreshold = 254
)

// validSizes lists the accepted maximum atlas sizes.
var validSizes = []int{4096, 2048, 1024, 512, 256, 128, 64}

// Default returns a Config populated with the tool defaults.
func Default() Config {
	return Config{
		Size:      defaultSize,
		Padding:   defaultPadding,
		Heuristic: defaultHeuristic,
		Split:     defaultSplit,
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
