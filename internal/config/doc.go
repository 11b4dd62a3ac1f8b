// Package config loads retroai's TOML configuration.
//
// # Discovery
//
// Load resolves the path in this order:
//
//  1. An explicitly provided path
//  2. ~/.config/retroai/config.toml
//  3. Built-in defaults when the file does not exist
//
// Fields that are missing or blank fall back to their defaults individually.
//
// # Fields
//
//	search_url   = "https://archive.org/advancedsearch.php"
//	metadata_url = "https://archive.org/metadata/"
//	model        = "llama3"
//	ollama_bin   = "ollama"
//	rows         = 10
//	log_file     = "~/.local/state/retroai/retroai.log"
//	log_level    = "info"
//
// rows is clamped to 1..100. Request timeouts are fixed and not configurable.
//
// # Errors
//
// A missing file is not an error. Load fails only when the path cannot be
// expanded, the file cannot be read, or the TOML does not parse.
package config
