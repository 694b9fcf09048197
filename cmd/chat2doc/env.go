package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-chat2doc"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// NewPool builds converter pools; tests substitute fakes.
	NewPool func(size int, opts ...chat2doc.Option) Pool
	// Serve runs the HTTP server; tests replace it to avoid binding a port.
	Serve serveFunc
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newPool,
		Serve:   serveHTTP,
	}
}
