package docstore

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/relgen/compiler/gen"
)

// ctxParams returns the (ctx context.Context, store relgen.Store) parameters
// shared by all store operations.
func ctxParams(h gen.GeneratorHelper) []jen.Code {
	return []jen.Code{
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("store").Qual(h.RuntimePkg(), "Store"),
	}
}

// refKey returns the identity of the row a reference points to.
func refKey(target *gen.Type, ref *jen.Statement) *jen.Statement {
	return identity(target, ref.Dot("Key"))
}

// identity returns the literal T{ID: key} of the identity of t.
func identity(t *gen.Type, key jen.Code) *jen.Statement {
	return jen.Id(t.IdentityName()).Values(jen.Id("ID").Op(":").Add(key))
}

// genCollectionIdentity generates the CollectionIdentity operation.
func genCollectionIdentity(_ gen.GeneratorHelper, f *jen.File, t *gen.Type, op *gen.Op) {
	r := t.Receiver(gen.ShapeIdentity)
	f.Commentf("%s returns the storage collection of %s rows.", op.Name(), t.Name)
	f.Func().Params(jen.Id(r).Id(t.IdentityName())).Id(op.Name()).Params().String().BlockFunc(func(grp *jen.Group) {
		for _, s := range op.Steps {
			if s.Kind == gen.StepConstant {
				grp.Return(jen.Id(t.CollectionConst()))
			}
		}
	})
}

// genFetch generates the Fetch operation of the identity.
func genFetch(h gen.GeneratorHelper, f *jen.File, t *gen.Type, op *gen.Op) {
	r := t.Receiver(gen.ShapeIdentity)
	rt := h.RuntimePkg()
	absent := []jen.Code{jen.Nil(), jen.False(), jen.Err()}
	f.Commentf("%s reads the %s row. The boolean is false if the row, or the target", op.Name(), t.Name)
	f.Comment("of an eager single link, does not exist. Absent targets of eager many")
	f.Comment("links are dropped.")
	f.Func().Params(jen.Id(r).Id(t.IdentityName())).Id(op.Name()).Params(ctxParams(h)...).
		Params(jen.Op("*").Id(t.ViewName()), jen.Bool(), jen.Error()).
		BlockFunc(func(grp *jen.Group) {
			for _, s := range op.Steps {
				switch s.Kind {
				case gen.StepSelect:
					grp.List(jen.Id("wire"), jen.Id("ok"), jen.Err()).Op(":=").
						Qual(rt, "SelectRow").Types(jen.Id(t.WireName())).
						Call(jen.Id("ctx"), jen.Id("store"), jen.Id(t.CollectionConst()), jen.Id(r).Dot("ID"))
					grp.If(jen.Err().Op("!=").Nil().Op("||").Op("!").Id("ok")).Block(jen.Return(absent...))
				case gen.StepLazyOne:
					grp.Id(s.Field.Local()).Op(":=").Add(refKey(s.Field.Target, jen.Id("wire").Dot(s.Field.StructField())))
				case gen.StepLazyMany:
					fd, target := s.Field, s.Field.Target
					grp.Id(fd.Local()).Op(":=").Make(jen.Index().Id(target.IdentityName()), jen.Len(jen.Id("wire").Dot(fd.StructField())))
					grp.For(jen.List(jen.Id("i"), jen.Id(fd.Var())).Op(":=").Range().Id("wire").Dot(fd.StructField())).Block(
						jen.Id(fd.Local()).Index(jen.Id("i")).Op("=").Add(refKey(target, jen.Id(fd.Var()))),
					)
				case gen.StepEagerOne:
					fd := s.Field
					grp.List(jen.Id(fd.Local()), jen.Id("ok"), jen.Err()).Op(":=").
						Add(refKey(fd.Target, jen.Id("wire").Dot(fd.StructField()))).
						Dot("Fetch").Call(jen.Id("ctx"), jen.Id("store"))
					grp.If(jen.Err().Op("!=").Nil().Op("||").Op("!").Id("ok")).Block(jen.Return(absent...))
				case gen.StepEagerMany:
					fd, target := s.Field, s.Field.Target
					fetch := jen.Func().
						Params(jen.Id("ctx").Qual("context", "Context"), jen.Id(fd.Var()).Qual(rt, "Ref")).
						Params(jen.Op("*").Id(target.ViewName()), jen.Bool(), jen.Error()).
						Block(jen.Return(refKey(target, jen.Id(fd.Var())).Dot("Fetch").Call(jen.Id("ctx"), jen.Id("store"))))
					grp.List(jen.Id(fd.Local()), jen.Err()).Op(":=").
						Qual(rt, "FetchAll").Call(jen.Id("ctx"), jen.Id("wire").Dot(fd.StructField()), fetch)
					grp.If(jen.Err().Op("!=").Nil()).Block(jen.Return(absent...))
				case gen.StepAssemble:
					grp.Return(jen.Op("&").Id(t.ViewName()).Values(jen.DictFunc(func(d jen.Dict) {
						d[jen.Id("ID")] = jen.Id(r).Dot("ID")
						for _, m := range t.View.Members {
							if m.Repr == gen.ReprScalar {
								d[jen.Id(m.Field.StructField())] = jen.Id("wire").Dot(m.Field.StructField())
							} else {
								d[jen.Id(m.Field.StructField())] = jen.Id(m.Field.Local())
							}
						}
					})), jen.True(), jen.Nil())
				default:
					panic(fmt.Sprintf("docstore: unexpected step %s in %s", s, op.Name()))
				}
			}
		})
}

// genUpdate generates the Update operation of the view.
func genUpdate(h gen.GeneratorHelper, f *jen.File, t *gen.Type, op *gen.Op) {
	r := t.Receiver(gen.ShapeView)
	zero := jen.Id(t.IdentityName()).Values()
	f.Commentf("%s overwrites the stored row with the view. The boolean is false, and", op.Name())
	f.Comment("nothing is written, if the row does not exist.")
	f.Func().Params(jen.Id(r).Op("*").Id(t.ViewName())).Id(op.Name()).Params(ctxParams(h)...).
		Params(jen.Id(t.IdentityName()), jen.Bool(), jen.Error()).
		BlockFunc(func(grp *jen.Group) {
			for _, s := range op.Steps {
				switch s.Kind {
				case gen.StepToPayload:
					grp.Id("payload").Op(":=").Id(r).Dot("Payload").Call()
				case gen.StepEncode:
					grp.List(jen.Id("wire"), jen.Err()).Op(":=").Id("payload").Dot("wire").Call()
					grp.If(jen.Err().Op("!=").Nil()).Block(jen.Return(zero, jen.False(), jen.Err()))
				case gen.StepOverwrite:
					grp.List(jen.Id("ok"), jen.Err()).Op(":=").Qual(h.RuntimePkg(), "UpdateRow").
						Call(jen.Id("ctx"), jen.Id("store"), jen.Id(t.CollectionConst()), jen.Id(r).Dot("ID"), jen.Id("wire"))
					grp.If(jen.Err().Op("!=").Nil().Op("||").Op("!").Id("ok")).Block(jen.Return(zero, jen.False(), jen.Err()))
					grp.Return(jen.Id(r).Dot("Identity").Call(), jen.True(), jen.Nil())
				default:
					panic(fmt.Sprintf("docstore: unexpected step %s in %s", s, op.Name()))
				}
			}
		})
}

// genCreate generates the Create operation of the payload.
func genCreate(h gen.GeneratorHelper, f *jen.File, t *gen.Type, op *gen.Op) {
	r := t.Receiver(gen.ShapePayload)
	zero := jen.Id(t.IdentityName()).Values()
	f.Commentf("%s stores the payload as a new %s row. Inline links are created first,", op.Name(), t.Name)
	f.Comment("depth first in field order, and replaced in place by links to the created")
	f.Comment("rows. The first failure aborts; rows created before it are kept.")
	f.Func().Params(jen.Id(r).Op("*").Id(t.PayloadName())).Id(op.Name()).Params(ctxParams(h)...).
		Params(jen.Id(t.IdentityName()), jen.Error()).
		BlockFunc(func(grp *jen.Group) {
			for _, s := range op.Steps {
				switch s.Kind {
				case gen.StepCascadeOne:
					grp.If(
						jen.List(jen.Id("_"), jen.Err()).Op(":=").Id(r).Dot(s.Field.StructField()).Dot("Resolve").Call(
							jen.Id("ctx"), jen.Id("store"), createExpr(s.Field.Target),
						),
						jen.Err().Op("!=").Nil(),
					).Block(jen.Return(zero, jen.Err()))
				case gen.StepCascadeMany:
					grp.For(jen.Id("i").Op(":=").Range().Id(r).Dot(s.Field.StructField())).Block(
						jen.If(
							jen.List(jen.Id("_"), jen.Err()).Op(":=").Id(r).Dot(s.Field.StructField()).Index(jen.Id("i")).Dot("Resolve").Call(
								jen.Id("ctx"), jen.Id("store"), createExpr(s.Field.Target),
							),
							jen.Err().Op("!=").Nil(),
						).Block(jen.Return(zero, jen.Err())),
					)
				case gen.StepEncode:
					grp.List(jen.Id("wire"), jen.Err()).Op(":=").Id(r).Dot("wire").Call()
					grp.If(jen.Err().Op("!=").Nil()).Block(jen.Return(zero, jen.Err()))
				case gen.StepInsert:
					grp.List(jen.Id("key"), jen.Err()).Op(":=").Qual(h.RuntimePkg(), "CreateRow").
						Call(jen.Id("ctx"), jen.Id("store"), jen.Id(t.CollectionConst()), jen.Id("wire"))
					grp.If(jen.Err().Op("!=").Nil()).Block(jen.Return(zero, jen.Err()))
					grp.Return(identity(t, jen.Id("key")), jen.Nil())
				default:
					panic(fmt.Sprintf("docstore: unexpected step %s in %s", s, op.Name()))
				}
			}
		})
}

// createExpr returns the method expression (*PetCreate).Create.
func createExpr(target *gen.Type) jen.Code {
	return jen.Parens(jen.Op("*").Id(target.PayloadName())).Dot(gen.OpCreate.String())
}

// genCreateAndFetch generates the CreateAndFetch operation of the payload.
func genCreateAndFetch(h gen.GeneratorHelper, f *jen.File, t *gen.Type, op *gen.Op) {
	r := t.Receiver(gen.ShapePayload)
	f.Commentf("%s creates the row and reads it back. A row that cannot be read back", op.Name())
	f.Comment("fails with a *relgen.NotFoundError.")
	f.Func().Params(jen.Id(r).Op("*").Id(t.PayloadName())).Id(op.Name()).Params(ctxParams(h)...).
		Params(jen.Op("*").Id(t.ViewName()), jen.Error()).
		BlockFunc(func(grp *jen.Group) {
			for _, s := range op.Steps {
				switch s.Kind {
				case gen.StepCreate:
					grp.List(jen.Id("id"), jen.Err()).Op(":=").Id(r).Dot(gen.OpCreate.String()).Call(jen.Id("ctx"), jen.Id("store"))
					grp.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err()))
				case gen.StepRefetch:
					grp.List(jen.Id("view"), jen.Id("ok"), jen.Err()).Op(":=").Id("id").Dot(gen.OpFetch.String()).Call(jen.Id("ctx"), jen.Id("store"))
					grp.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err()))
					grp.If(jen.Op("!").Id("ok")).Block(
						jen.Return(jen.Nil(), jen.Qual(h.RuntimePkg(), "NewNotFoundErrorWithID").Call(jen.Lit(t.Name), jen.Id("id").Dot("ID"))),
					)
					grp.Return(jen.Id("view"), jen.Nil())
				default:
					panic(fmt.Sprintf("docstore: unexpected step %s in %s", s, op.Name()))
				}
			}
		})
}
