// Package logger wraps zap for the maple binaries:
//   - a global sugared logger writing console lines to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing for the --log-level flag,
//   - structured shorthand functions (DebugKV, InfoKV, WarnKV, ErrorKV).
//
// Stdout is left to the human-readable progress lines of each command.
package logger
