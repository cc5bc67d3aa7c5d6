// Package app contains the application logic behind the command line: its
// configuration, its logger, and the compile lifecycle, either as a single
// run or as a watch loop that recompiles when project files change. It is
// decoupled from any specific entrypoint.
package app
