// Package config manages host configuration stored in ~/.inkframe/config.yaml,
// with environment variable overrides using the INKFRAME_ prefix.
package config
