// Package config loads, normalizes, and validates subgen configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/subgen/config.toml or a
// project-local subgen.toml. CLI flags are overlaid on top by the command
// layer; the resulting Config is an immutable snapshot passed by reference to
// every component.
package config
