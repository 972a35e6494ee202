// Package config loads, normalizes, and validates the aurify TOML
// configuration. Paths are tilde-expanded and made absolute during load so
// the rest of the program never handles unexpanded values.
package config
