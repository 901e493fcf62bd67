// Package docstore provides the document-store dialect of the relgen code
// generator.
//
// Usage:
//
//	import (
//	    "github.com/syssam/relgen/compiler/gen"
//	    "github.com/syssam/relgen/compiler/gen/docstore"
//	)
//
//	generator := gen.NewJenniferGenerator(graph, outDir)
//	generator.WithDialect(docstore.NewDialect(generator))
//	err := generator.Generate(ctx)
//
// Generated code structure:
//
//	{output}/
//	├── relgen.go    # Store alias, collection registry, assertions
//	└── {class}.go   # Identity, view, payload and wire types with operations
//
// Each operation is rendered from the steps of its plan, so the generated
// bodies follow the plan order exactly: a Create cascades inline links in
// field order before it encodes and inserts the row.
package docstore

import (
	"context"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/relgen/compiler/gen"
)

// Generate is the convenience function to generate document-store code for
// a graph. It applies the hooks registered in g.Hooks and returns the paths
// of the written files.
//
//	files, err := docstore.Generate(ctx, graph)
func Generate(ctx context.Context, g *gen.Graph) ([]string, error) {
	if g.Config == nil || g.Target == "" {
		return nil, gen.NewConfigError("Target", nil, "missing target directory in config")
	}
	var written []string
	base := gen.GenerateFunc(func(g *gen.Graph) error {
		generator := gen.NewJenniferGenerator(g, g.Target)
		generator.WithDialect(NewDialect(generator))
		err := generator.Generate(ctx)
		written = generator.Written()
		return err
	})
	if err := g.Gen(base); err != nil {
		return written, err
	}
	return written, nil
}

// Dialect implements gen.Dialect for document stores: every row is one
// msgpack document and every link a reference to another document.
type Dialect struct {
	helper gen.GeneratorHelper
}

// NewDialect creates a new document-store dialect generator.
// The helper parameter should be a *gen.JenniferGenerator.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{helper: helper}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "docstore"
}

// GenEntity generates the file of one class ({class}.go).
func (d *Dialect) GenEntity(t *gen.Type) *jen.File {
	return genEntity(d.helper, t)
}

// GenPackage generates the shared package file (relgen.go).
func (d *Dialect) GenPackage() *jen.File {
	return genPackage(d.helper)
}

// Verify Dialect implements gen.Dialect at compile time.
var _ gen.Dialect = (*Dialect)(nil)
