// Package component is the lifecycle of the process's long-lived parts,
// the HTTP server and the telemetry exporters.
package component
