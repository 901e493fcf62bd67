package gen

import (
	"path"
	"path/filepath"
	"runtime"
)

// DefaultRuntime is the import path of the runtime package referenced by
// generated code.
const DefaultRuntime = "github.com/syssam/relgen"

// DefaultHeader is the comment written at the top of each generated file.
const DefaultHeader = "Code generated by relgen. DO NOT EDIT."

// Config holds the global configuration of a generation run.
type Config struct {
	// Package is the import path of the generated package,
	// for example "github.com/org/project/model".
	Package string
	// Target is the directory generated files are written to.
	Target string
	// Header is the comment written at the top of each generated file.
	Header string
	// Workers bounds the number of files rendered concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
	// Runtime is the import path of the runtime package used by the
	// generated code. Defaults to DefaultRuntime.
	Runtime string
	// Hooks wrap the generator of the run, outermost last.
	Hooks []Hook
}

// PkgName returns the name of the generated package: the last element of
// Package, or of Target when Package is empty.
func (c *Config) PkgName() string {
	if c.Package != "" {
		return path.Base(c.Package)
	}
	if c.Target != "" {
		return filepath.Base(c.Target)
	}
	return "model"
}

// RuntimePkg returns the import path of the runtime package.
func (c *Config) RuntimePkg() string {
	if c.Runtime != "" {
		return c.Runtime
	}
	return DefaultRuntime
}

// HeaderComment returns the header of generated files.
func (c *Config) HeaderComment() string {
	if c.Header != "" {
		return c.Header
	}
	return DefaultHeader
}

// WorkerCount returns the effective number of generation workers.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Generator is the interface that wraps the Generate method.
type Generator interface {
	// Generate generates the code for the given graph.
	Generate(*Graph) error
}

// GenerateFunc adapts an ordinary function to the Generator interface.
type GenerateFunc func(*Graph) error

// Generate calls f(g).
func (f GenerateFunc) Generate(g *Graph) error {
	return f(g)
}

// Hook is a middleware around a Generator, for example to log or time a run,
// or to emit extra files after the main ones.
type Hook func(Generator) Generator
