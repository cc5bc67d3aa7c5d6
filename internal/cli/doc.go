// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates the compile and watch commands and their flags into the
// application's configuration, layered over the config file and environment.
package cli
