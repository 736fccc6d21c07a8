// Package host provides report-channel implementations standing in for the oracle
// runtime: Process for the command-line harness and Capture for tests and node
// simulation.
package host
