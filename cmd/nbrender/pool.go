package main

import "runtime"

// Worker count bounds for automatic sizing.
const (
	minAutoWorkers = 1
	maxAutoWorkers = 8
)

// resolveWorkers determines how many notebooks are converted at once.
// Priority: explicit flag > NBRENDER_WORKERS > GOMAXPROCS-based calculation.
func resolveWorkers(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return envWorkers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / 2
	return min(max(n, minAutoWorkers), maxAutoWorkers)
}
