// Package main implements the csvseek binary. It is the only
// public-facing entry point, since csvseek's Go packages are all
// internal.
package main

import "github.com/csvseek/csvseek/internal/cli"

// Main entry point for the csvseek binary.
func main() {
	cli.DoCLI()
}
