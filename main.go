// Package main provides the entry point for o3sim.
// o3sim is a cycle-accurate model of a single-issue, out-of-order
// RV32 core built on Akita cache components.
//
// For the full CLI, use: go run ./cmd/o3sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("o3sim - Out-of-Order RV32 Core Simulator")
	fmt.Println("")
	fmt.Println("Usage: o3sim [options] <program.elf>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config      Path to core configuration JSON file")
	fmt.Println("  -image       Treat the program as a flat image")
	fmt.Println("  -image-base  Load address for flat images")
	fmt.Println("  -caches      Model L1 instruction and data caches")
	fmt.Println("  -max-cycles  Stop after this many cycles")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/o3sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/o3sim' instead.")
	}
}
