// Package server runs the XRPC HTTP server of the PDS.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown with a bounded drain period.
package server
