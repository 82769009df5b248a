// Package config loads the two configuration surfaces of relink: the
// links document that declares the symlinks to materialize, and the
// layered application settings (embedded defaults, optional settings
// file, environment overrides).
package config
