// Package relgen is the runtime of the code generated by the relgen
// compiler.
//
// Generated packages declare, per class, an identity (UserID), a
// materialized view (User), a creation payload (UserCreate) and an
// unexported wire shape. The operations of those types talk to a [Store]
// through the helpers of this package:
//
//	id, err := (&model.UserCreate{
//	    Name: "ada",
//	    Pets: []model.PetLink{
//	        relgen.Inline[model.PetID](&model.PetCreate{Name: "rex"}),
//	    },
//	}).Create(ctx, store)
//
//	user, ok, err := id.Fetch(ctx, store)
//
// Rows are encoded with msgpack. Links are stored as [Ref] values holding
// the collection and key of the target row. Absent rows are reported with a
// false boolean rather than an error; store and codec failures are wrapped
// in a [StorageError].
package relgen
