// Package cli parses playgraph subcommands and flags, layers them over the
// configuration file, and runs the analysis. Usage problems are reported as
// ExitError with code 2; analysis and rendering failures exit with 1.
package cli
