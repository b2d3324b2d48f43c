// Package main is the entry point for the nbforge CLI.
package main

import "nbforge.dev/pkg/nbforge/cmd"

func main() {
	cmd.Execute()
}
