// Package config loads and validates application configuration.
//
// Configuration is layered: built-in defaults, then SLIDEPULSE_*
// environment variables, then an optional YAML file (slidepulse.yaml in
// the working directory, or the path in SLIDEPULSE_CONFIG). The extraction
// keyword tables ride along in the same file so deck-specific vocabularies
// need no rebuild.
package config
