// Package file provides the TOML-based ConfigStore adapter.
// Configuration lives in ~/.exwatch/config.toml unless overridden.
package file
