package gen

import (
	"context"
	"path/filepath"
	"slices"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/relgen/schema/field"
)

// PackageFile is the name of the shared file of a generated package.
const PackageFile = "relgen.go"

// JenniferGenerator generates code using Jennifer and writes one file per
// class in parallel.
type JenniferGenerator struct {
	graph   *Graph
	workers int
	outDir  string
	pkg     string
	dialect Dialect

	mu      sync.Mutex
	written []string
}

// NewJenniferGenerator creates a new Jennifer-based generator.
// You must call WithDialect() to set a dialect before calling Generate().
//
// Example:
//
//	import "github.com/syssam/relgen/compiler/gen/docstore"
//
//	gen := gen.NewJenniferGenerator(graph, outDir)
//	gen.WithDialect(docstore.NewDialect(gen))
//	gen.Generate(ctx)
func NewJenniferGenerator(g *Graph, outDir string) *JenniferGenerator {
	gen := &JenniferGenerator{
		graph:   g,
		workers: 1,
		outDir:  outDir,
		pkg:     filepath.Base(outDir),
	}
	if g.Config != nil {
		gen.workers = g.WorkerCount()
		if g.Package != "" {
			gen.pkg = g.PkgName()
		}
	}
	return gen
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithPackage sets the output package name.
func (g *JenniferGenerator) WithPackage(pkg string) *JenniferGenerator {
	if pkg != "" {
		g.pkg = pkg
	}
	return g
}

// WithDialect sets the dialect generator.
func (g *JenniferGenerator) WithDialect(d Dialect) *JenniferGenerator {
	if d != nil {
		g.dialect = d
	}
	return g
}

// Generate renders every class and the package file, and writes them in
// parallel. The first failure cancels the pending files.
func (g *JenniferGenerator) Generate(ctx context.Context) error {
	if g.dialect == nil {
		return NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	}
	if err := mkdir(g.outDir); err != nil {
		return NewGenerationError("write", g.outDir, "create output directory", err)
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)

	for _, t := range g.graph.Nodes {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.writeFile(g.dialect.GenEntity(t), t.FileName())
		})
	}
	errg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return g.writeFile(g.dialect.GenPackage(), PackageFile)
	})

	return errg.Wait()
}

// Written returns the paths of the files written so far, sorted.
func (g *JenniferGenerator) Written() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	files := slices.Clone(g.written)
	slices.Sort(files)
	return files
}

// =============================================================================
// GeneratorHelper interface implementation
// =============================================================================

// NewFile creates a new Jennifer file with the standard header comment.
func (g *JenniferGenerator) NewFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	header := DefaultHeader
	if g.graph.Config != nil {
		header = g.graph.HeaderComment()
	}
	f.HeaderComment(header)
	return f
}

// GoType returns the Jennifer code for a scalar field's Go type.
func (g *JenniferGenerator) GoType(f *Field) jen.Code {
	return goType(f.Type)
}

// MemberType returns the Jennifer code for a field within a shape.
func (g *JenniferGenerator) MemberType(m Member) jen.Code {
	f := m.Field
	rt := g.RuntimePkg()
	switch m.Repr {
	case ReprIdentity:
		return jen.Id(f.Target.IdentityName())
	case ReprIdentityList:
		return jen.Index().Id(f.Target.IdentityName())
	case ReprView:
		return jen.Op("*").Id(f.Target.ViewName())
	case ReprViewList:
		return jen.Index().Op("*").Id(f.Target.ViewName())
	case ReprLink:
		return jen.Qual(rt, "Link").Types(jen.Id(f.Target.IdentityName()), jen.Op("*").Id(f.Target.PayloadName()))
	case ReprLinkList:
		return jen.Index().Qual(rt, "Link").Types(jen.Id(f.Target.IdentityName()), jen.Op("*").Id(f.Target.PayloadName()))
	case ReprRef:
		return jen.Qual(rt, "Ref")
	case ReprRefList:
		return jen.Index().Qual(rt, "Ref")
	default:
		return goType(f.Type)
	}
}

// RuntimePkg returns the import path of the runtime package.
func (g *JenniferGenerator) RuntimePkg() string {
	if g.graph.Config == nil {
		return DefaultRuntime
	}
	return g.graph.RuntimePkg()
}

// Graph returns the schema graph.
func (g *JenniferGenerator) Graph() *Graph {
	return g.graph
}

// Pkg returns the output package name.
func (g *JenniferGenerator) Pkg() string {
	return g.pkg
}

// Verify JenniferGenerator implements GeneratorHelper at compile time.
var _ GeneratorHelper = (*JenniferGenerator)(nil)

// goType returns the Jennifer code for a primitive type.
func goType(t field.Type) jen.Code {
	switch t {
	case field.TypeBool:
		return jen.Bool()
	case field.TypeTime:
		return jen.Qual("time", "Time")
	case field.TypeBytes:
		return jen.Index().Byte()
	case field.TypeUUID:
		return jen.Qual("github.com/google/uuid", "UUID")
	case field.TypeString:
		return jen.String()
	case field.TypeInt8:
		return jen.Int8()
	case field.TypeInt16:
		return jen.Int16()
	case field.TypeInt32:
		return jen.Int32()
	case field.TypeInt:
		return jen.Int()
	case field.TypeInt64:
		return jen.Int64()
	case field.TypeUint8:
		return jen.Uint8()
	case field.TypeUint16:
		return jen.Uint16()
	case field.TypeUint32:
		return jen.Uint32()
	case field.TypeUint:
		return jen.Uint()
	case field.TypeUint64:
		return jen.Uint64()
	case field.TypeFloat32:
		return jen.Float32()
	case field.TypeFloat64:
		return jen.Float64()
	default:
		return jen.Any()
	}
}
