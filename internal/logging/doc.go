// Package logging provides structured logging for rokuctl.
//
// It wraps a zap logger behind package-level functions so the rest of the
// code can log without carrying a logger around. By default the logger is a
// no-op: CLI commands print their own output and the debug side channel stays
// silent unless the user opts in via the ROKUCTL_LOG_LEVEL environment
// variable ("debug", "info", "warn" or "error"). Log output goes to stderr so
// it never mixes with command output.
//
//	ROKUCTL_LOG_LEVEL=debug rokuctl apps
//
// All functions are safe for concurrent use.
package logging
