// Package gen plans and generates the typed data-access layer of a relgen
// schema.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	schema.Manager (classes + applied relations)
//	        ↓
//	   Graph (one Type plan per class)
//	        ↓
//	   Dialect (store-family specific rendering)
//	        ↓
//	   JenniferGenerator (parallel rendering, goimports, writes)
//
// # Key Types
//
//   - Graph: Holds all Type plans, built by NewGraph after all relations
//     were applied.
//   - Type: The plan of one class: its Fields, four Shapes (identity, view,
//     payload, wire) and five Ops.
//   - Field: A scalar or link field with its per-shape representation (Repr).
//   - Op: An operation (Create, CreateAndFetch, Update, Fetch,
//     CollectionIdentity) as an ordered list of Steps.
//   - Config: Global configuration for code generation.
//
// For class User with a link "pets" to class Pet the shapes are:
//
//	UserID      { ID string }
//	User        { ID string; ...scalars; Pets []PetID or []*Pet }
//	UserCreate  { ...scalars; Pets []relgen.Link[PetID, *PetCreate] }
//	userWire    { ...scalars; Pets []relgen.Ref }
//
// # Error Handling
//
//   - SchemaError: a schema that cannot be planned (including any error
//     recorded by the manager)
//   - ConfigError: configuration errors
//   - GenerationError: rendering, formatting or writing failures
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./model"),
//	    gen.WithPackage("github.com/org/project/model"),
//	    gen.WithWorkers(4),
//	)
//
// # Usage
//
// The recommended way to generate code is through the docstore package:
//
//	graph, err := gen.NewGraph(config, manager)
//	if err != nil {
//	    return err
//	}
//	files, err := docstore.Generate(ctx, graph)
package gen
