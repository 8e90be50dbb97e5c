// Package internal contains shared infrastructure for the tnav packages:
// logger setup and environment switches. Nothing here is public API.
package internal

import "os"

// DebugEnvVar raises the internal logger to debug when set to any value.
const DebugEnvVar = "TNAV_DEBUG"

// DebugRequested reports whether DebugEnvVar is set.
func DebugRequested() bool {
	return os.Getenv(DebugEnvVar) != ""
}
