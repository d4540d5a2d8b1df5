// Package config defines configuration structures for the glacierkit CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (GLACIERKIT_ prefix)
//   - YAML configuration file
//
// Precedence is flags over environment over file over defaults; the
// commands layer the sources with Merge.
package config
