package docstore

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/relgen/compiler/gen"
)

// genPackage generates the shared package file: the store alias, the
// collection registry and the compile-time assertions of every class.
func genPackage(h gen.GeneratorHelper) *jen.File {
	rt := h.RuntimePkg()
	g := h.Graph()
	f := h.NewFile(h.Pkg())
	f.ImportName(rt, "relgen")
	f.PackageComment("Package " + h.Pkg() + " is the generated data-access layer of the schema.")

	f.Comment("Store is the document store the generated operations read and write.")
	f.Type().Id("Store").Op("=").Qual(rt, "Store")

	f.Comment("Collections maps every class name to its storage collection.")
	f.Var().Id("Collections").Op("=").Map(jen.String()).String().Values(jen.DictFunc(func(d jen.Dict) {
		for _, t := range g.Nodes {
			d[jen.Lit(t.Name)] = jen.Id(t.CollectionConst())
		}
	}))

	if len(g.Nodes) == 0 {
		return f
	}
	f.Comment("Every class implements the runtime contracts.")
	f.Var().DefsFunc(func(grp *jen.Group) {
		for _, t := range g.Nodes {
			grp.Id("_").Qual(rt, "Identity").Op("=").Id(t.IdentityName()).Values()
			grp.Id("_").Qual(rt, "Viewer").Types(jen.Id(t.IdentityName())).Op("=").Parens(jen.Op("*").Id(t.ViewName())).Parens(jen.Nil())
		}
	})
	return f
}
