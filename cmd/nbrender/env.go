package main

import (
	"io"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// SetMaxProcs adjusts GOMAXPROCS to the container CPU quota, reporting
	// through printf. nil leaves GOMAXPROCS alone.
	SetMaxProcs func(printf func(string, ...interface{})) (undo func(), err error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		SetMaxProcs: func(printf func(string, ...interface{})) (func(), error) {
			return maxprocs.Set(maxprocs.Logger(printf))
		},
	}
}
