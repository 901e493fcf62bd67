package gen

import "github.com/dave/jennifer/jen"

// Dialect renders the plans of a graph for one store family.
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                    JenniferGenerator                        │
//	│  (Orchestration: parallel execution, file writing)          │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ uses
//	                          ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Dialect                              │
//	│  (one file per class, one package file)                     │
//	└─────────────────────────────────────────────────────────────┘
//
// Methods return *jen.File containing the generated code. The generator
// orchestrates calling these methods and writing the files to disk.
type Dialect interface {
	// Name returns the dialect name (e.g., "docstore").
	Name() string
	// GenEntity generates the file of one class ({class}.go).
	GenEntity(t *Type) *jen.File
	// GenPackage generates the shared package file (relgen.go).
	GenPackage() *jen.File
}

// GeneratorHelper provides helper methods for dialect implementations.
// JenniferGenerator implements this interface, allowing dialect packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file with the standard header comment.
	NewFile(pkg string) *jen.File

	// GoType returns the Jennifer code for a scalar field's Go type.
	GoType(f *Field) jen.Code

	// MemberType returns the Jennifer code for a field within a shape.
	MemberType(m Member) jen.Code

	// RuntimePkg returns the import path of the runtime package.
	RuntimePkg() string

	// Graph returns the schema graph.
	Graph() *Graph

	// Pkg returns the output package name.
	Pkg() string
}
