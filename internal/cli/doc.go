// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// resolves the raw subcommand string into the closed app.Command enum, so
// the core never sees unparsed command strings.
package cli
