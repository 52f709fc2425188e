// Package config loads application configuration from defaults, environment
// variables (SAAS_* keys), and an optional YAML overlay file, in that
// precedence order. CLI flags applied by the binaries override all three.
package config
