// Package main is the entry point for the pitchmetrics CLI tool, which
// processes football tracking data and computes per-player physical metrics.
package main

import "github.com/pitchlab/go-pitch-metrics/cmd"

func main() {
	cmd.Execute()
}
