// Package config loads captionplayer settings from TOML.
//
// Load starts from Default, overlays the file when it exists, then normalizes
// and validates the result. A missing file is not an error.
package config
