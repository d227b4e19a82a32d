// Package config handles configuration management for snortamv.
// It layers embedded defaults, the user's TOML file, SNORTAMV_ environment
// variables and command-line overrides, in that order.
package config
