package docstore

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/relgen/compiler/gen"
)

// genEntity generates the file of one class.
func genEntity(h gen.GeneratorHelper, t *gen.Type) *jen.File {
	f := h.NewFile(h.Pkg())
	f.ImportName(h.RuntimePkg(), "relgen")

	f.Commentf("%s is the storage collection of %s rows. It changes with the shape of the class.", t.CollectionConst(), t.Name)
	f.Const().Id(t.CollectionConst()).Op("=").Lit(t.Collection)

	genIdentity(h, f, t)
	genLinkHelpers(h, f, t)
	genView(h, f, t)
	genPayload(h, f, t)
	genWire(h, f, t)
	return f
}

// genIdentity generates the identity type and its operations.
func genIdentity(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	r := t.Receiver(gen.ShapeIdentity)
	f.Commentf("%s identifies a stored %s.", t.IdentityName(), t.Name)
	f.Type().Id(t.IdentityName()).Struct(
		jen.Id("ID").String().Tag(map[string]string{"json": "id"}),
	)

	f.Comment("Ref returns the store reference of the row.")
	f.Func().Params(jen.Id(r).Id(t.IdentityName())).Id("Ref").Params().Qual(h.RuntimePkg(), "Ref").Block(
		jen.Return(jen.Qual(h.RuntimePkg(), "Ref").Values(jen.Dict{
			jen.Id("Collection"): jen.Id(t.CollectionConst()),
			jen.Id("Key"):        jen.Id(r).Dot("ID"),
		})),
	)

	genCollectionIdentity(h, f, t, t.Op(gen.OpCollectionIdentity))
	genFetch(h, f, t, t.Op(gen.OpFetch))
}

// genLinkHelpers generates the link alias and the existing-link constructor.
func genLinkHelpers(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	rt := h.RuntimePkg()
	f.Commentf("%s is the value of a link field targeting %s.", t.LinkName(), t.Name)
	f.Type().Id(t.LinkName()).Op("=").Qual(rt, "Link").Types(jen.Id(t.IdentityName()), jen.Op("*").Id(t.PayloadName()))

	f.Commentf("%s returns a link to an existing %s.", t.LinkFunc(), t.Name)
	f.Func().Id(t.LinkFunc()).Params(jen.Id("id").Id(t.IdentityName())).Id(t.LinkName()).Block(
		jen.Return(jen.Qual(rt, "Existing").Types(jen.Id(t.IdentityName()), jen.Op("*").Id(t.PayloadName())).Call(jen.Id("id"))),
	)
}

// genView generates the materialized view type.
func genView(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	r := t.Receiver(gen.ShapeView)
	f.Commentf("%s is a %s row read from the store.", t.ViewName(), t.Name)
	f.Type().Id(t.ViewName()).StructFunc(func(group *jen.Group) {
		group.Id("ID").String().Tag(map[string]string{"json": "id"})
		for _, m := range t.View.Members {
			group.Id(m.Field.StructField()).Add(h.MemberType(m)).Tag(map[string]string{"json": m.Field.Name})
		}
	})

	f.Comment("Identity returns the identity of the row. It is nil-safe.")
	f.Func().Params(jen.Id(r).Op("*").Id(t.ViewName())).Id("Identity").Params().Id(t.IdentityName()).Block(
		jen.If(jen.Id(r).Op("==").Nil()).Block(
			jen.Return(jen.Id(t.IdentityName()).Values()),
		),
		jen.Return(identity(t, jen.Id(r).Dot("ID"))),
	)

	f.Comment("Payload returns the payload of the row, with every link to an existing row.")
	f.Func().Params(jen.Id(r).Op("*").Id(t.ViewName())).Id("Payload").Params().Op("*").Id(t.PayloadName()).Block(
		jen.Return(jen.Op("&").Id(t.PayloadName()).Values(jen.DictFunc(func(d jen.Dict) {
			for _, m := range t.View.Members {
				d[jen.Id(m.Field.StructField())] = existingLink(h, m, jen.Id(r).Dot(m.Field.StructField()))
			}
		}))),
	)

	genUpdate(h, f, t, t.Op(gen.OpUpdate))
}

// existingLink converts a view member into its payload value.
func existingLink(h gen.GeneratorHelper, m gen.Member, v *jen.Statement) jen.Code {
	if m.Repr == gen.ReprScalar {
		return v
	}
	rt := h.RuntimePkg()
	target := m.Field.Target
	types := []jen.Code{jen.Id(target.IdentityName()), jen.Op("*").Id(target.PayloadName())}
	switch m.Repr {
	case gen.ReprView:
		return jen.Id(target.LinkFunc()).Call(v.Dot("Identity").Call())
	case gen.ReprIdentityList:
		return jen.Qual(rt, "ExistingLinks").Types(types...).Call(v)
	case gen.ReprViewList:
		ids := jen.Qual(rt, "IdentitiesOf").Types(jen.Op("*").Id(target.ViewName()), jen.Id(target.IdentityName())).Call(v)
		return jen.Qual(rt, "ExistingLinks").Types(types...).Call(ids)
	default:
		return jen.Id(target.LinkFunc()).Call(v)
	}
}

// genPayload generates the creation payload type.
func genPayload(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	r := t.Receiver(gen.ShapePayload)
	f.Commentf("%s is the payload of a %s to create. Link fields either reference", t.PayloadName(), t.Name)
	f.Comment("existing rows or hold payloads created along with the owner.")
	f.Type().Id(t.PayloadName()).StructFunc(func(group *jen.Group) {
		for _, m := range t.Payload.Members {
			group.Id(m.Field.StructField()).Add(h.MemberType(m)).Tag(map[string]string{"json": m.Field.Name})
		}
	})

	genCreate(h, f, t, t.Op(gen.OpCreate))
	genCreateAndFetch(h, f, t, t.Op(gen.OpCreateAndFetch))

	f.Comment("Link returns an inline link creating the payload along with its owner.")
	f.Func().Params(jen.Id(r).Op("*").Id(t.PayloadName())).Id("Link").Params().Id(t.LinkName()).Block(
		jen.Return(jen.Qual(h.RuntimePkg(), "Inline").Types(jen.Id(t.IdentityName())).Call(jen.Id(r))),
	)

	genToWire(h, f, t)
}

// genToWire generates the payload to wire conversion. It fails on inline
// links, which Create resolves beforehand.
func genToWire(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	r := t.Receiver(gen.ShapePayload)
	rt := h.RuntimePkg()
	f.Comment("wire converts the payload into its stored encoding. Every link must")
	f.Comment("reference an existing row.")
	f.Func().Params(jen.Id(r).Op("*").Id(t.PayloadName())).Id("wire").Params().Params(jen.Op("*").Id(t.WireName()), jen.Error()).BlockFunc(func(grp *jen.Group) {
		for _, m := range t.Wire.Members {
			var fn string
			switch m.Repr {
			case gen.ReprRef:
				fn = "LinkRef"
			case gen.ReprRefList:
				fn = "LinkRefs"
			default:
				continue
			}
			grp.List(jen.Id(m.Field.Local()), jen.Err()).Op(":=").Qual(rt, fn).Call(jen.Lit(m.Field.Name), jen.Id(r).Dot(m.Field.StructField()))
			grp.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err()))
		}
		grp.Return(jen.Op("&").Id(t.WireName()).Values(jen.DictFunc(func(d jen.Dict) {
			for _, m := range t.Wire.Members {
				if m.Repr == gen.ReprScalar {
					d[jen.Id(m.Field.StructField())] = jen.Id(r).Dot(m.Field.StructField())
				} else {
					d[jen.Id(m.Field.StructField())] = jen.Id(m.Field.Local())
				}
			}
		})), jen.Nil())
	})
}

// genWire generates the unexported wire type.
func genWire(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	f.Commentf("%s is the stored encoding of a %s row.", t.WireName(), t.Name)
	f.Type().Id(t.WireName()).StructFunc(func(group *jen.Group) {
		for _, m := range t.Wire.Members {
			group.Id(m.Field.StructField()).Add(h.MemberType(m)).Tag(map[string]string{"msgpack": m.Field.Tag()})
		}
	})
}
