// Package config loads and validates subed configuration.
//
// Settings live in a TOML file (default ~/.config/subed/config.toml, or
// subed.toml in the working directory). A missing file is not an error: the
// repository defaults apply. SUBED_CONFIG, SUBED_AUTOSAVE_PATH and
// SUBED_LOG_FILE override the file. Paths are expanded (including ~) before
// they are handed to the session and logger.
package config
