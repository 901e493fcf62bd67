// Package schema provides the declaration model of a relgen schema: classes,
// their scalar fields and the bidirectional relations between them.
//
// Schemas are declared against a [Manager], which owns the class registry.
// Classes are registered first and addressed by the [ClassID] handle minted
// at registration; relations are described with a staged builder and then
// applied, which synthesizes one link field on each participant:
//
//	m := schema.NewManager()
//	user, _ := m.RegisterClass("User",
//	    schema.Scalar("name", field.TypeString),
//	    schema.Scalar("email", field.TypeString),
//	    schema.Scalar("age", field.TypeUint16),
//	)
//	pet, _ := m.RegisterClass("Pet", schema.Scalar("name", field.TypeString))
//
//	// Pet.owner (single, eager) <-> User.pets (many, lazy)
//	err := m.RegisterRelation(
//	    schema.ForClass(pet).
//	        LinksOne("owner", user).
//	        ReverseMany("pets").
//	        BuildPrefetch(),
//	)
//
// # Prefetch
//
// The prefetch flag of a relation applies only to the field synthesized on
// the declaring (left) class. The mirror field always holds bare references,
// so two classes linking to each other never load each other eagerly in a
// cycle.
//
// # Collection identity
//
// Every class is stored in a collection named after a hash of its shape
// (see [Manager.CollectionIdentity]). Changing a field, a link cardinality or
// a link target changes the collection, so rows written under an old shape
// are never read back under a new one.
package schema
