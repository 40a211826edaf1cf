// Package cli holds small helpers shared by the attestor commands:
// output format parsing and destinations, signal-driven shutdown
// contexts, and command error types.
package cli
