// Package config loads and validates the TOML configuration for ritualpair.
//
// Configuration is looked up at ~/.config/ritualpair/config.toml, then
// ./ritualpair.toml, unless an explicit path is given. A missing file is not
// an error: every setting has a usable default, so the tool works with no
// configuration at all.
package config
