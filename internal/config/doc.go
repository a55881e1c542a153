// Package config loads ddexcheck.yaml and resolves settings.
//
// Settings come from four layers, highest precedence first:
//
//  1. command-line flags
//  2. DDEXCHECK_* environment variables (a .env file is loaded first)
//  3. ddexcheck.yaml in the working directory
//  4. built-in defaults
//
// Each layer is a ProjectConfig; Resolve merges them and validates the
// outcome. Invalid settings wrap ddex.ErrInvalidConfig.
package config
