// Package config loads the wg-bridge application configuration from a single
// TOML document, resolves the $HOME placeholder in user_conf, and exposes the
// result as an immutable process-wide value initialised exactly once at
// startup. The configuration path is resolved with precedence: CLI flag >
// WG_BRIDGE_CONFIG environment variable > the fixed system default.
package config
