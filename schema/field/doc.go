// Package field defines the primitive scalar types a class field can hold.
//
// Scalar types are named after their Go counterparts and can be parsed from
// schema files:
//
//	field.TypeString          // string
//	field.TypeUint16          // uint16
//	field.ParseType("time")   // field.TypeTime
//
// Relation (link) fields are not scalars; they are synthesized by the schema
// manager when a relation is applied.
package field
