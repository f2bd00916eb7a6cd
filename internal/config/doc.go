// Package config loads, normalizes, and validates crunch2d run settings.
//
// A Config is built once per invocation from Default, an optional TOML file
// and command-line overrides, validated, and then passed by value to the
// packing stages. Nothing downstream mutates it.
package config
