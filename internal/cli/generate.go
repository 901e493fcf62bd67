package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/relgen/compiler/gen"
	"github.com/syssam/relgen/compiler/gen/docstore"
	"github.com/syssam/relgen/compiler/load"
)

// watchDebounce coalesces the bursts of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

func newGenerateCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "generate [schema.yaml]",
		Short: "Generate the data-access package of a schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			if len(args) == 1 {
				cfg.Schema = args[0]
			}
			logger := loggerFrom(ctx)
			if _, err := generate(ctx, cfg, logger); err != nil {
				if !watch {
					return err
				}
				logger.Error().Err(err).Msg("generate")
			}
			if !watch {
				return nil
			}
			w, err := newSchemaWatcher(cfg.Schema)
			if err != nil {
				return err
			}
			defer w.Close()
			logger.Info().Str("schema", cfg.Schema).Msg("watching for changes")
			return w.Run(ctx, watchDebounce, func() {
				if _, err := generate(ctx, cfg, logger); err != nil {
					logger.Error().Err(err).Msg("generate")
				}
			})
		},
	}
	flags := cmd.Flags()
	flags.StringP("target", "o", "", "output directory (default ./model)")
	flags.String("package", "", "import path of the generated package")
	flags.String("header", "", "comment written at the top of generated files")
	flags.String("runtime", "", "import path of the relgen runtime package")
	flags.Int("workers", 0, "files rendered concurrently (default GOMAXPROCS)")
	flags.BoolVarP(&watch, "watch", "w", false, "regenerate when the schema file changes")
	return cmd
}

// generate compiles the schema file of cfg and writes the generated
// package. It returns the written files.
func generate(ctx context.Context, cfg *Config, logger *zerolog.Logger) ([]string, error) {
	start := time.Now()
	g, err := plan(cfg, gen.WithHooks(logHook(logger)))
	if err != nil {
		return nil, err
	}
	files, err := docstore.Generate(ctx, g)
	if err != nil {
		return files, err
	}
	logger.Info().
		Str("schema", cfg.Schema).
		Str("target", cfg.Target).
		Int("classes", len(g.Nodes)).
		Int("files", len(files)).
		Dur("took", time.Since(start)).
		Msg("generated")
	return files, nil
}

// plan loads the schema file of cfg and plans its classes.
func plan(cfg *Config, opts ...gen.Option) (*gen.Graph, error) {
	m, err := load.Load(cfg.Schema)
	if err != nil {
		return nil, err
	}
	gc, err := gen.NewConfig(append(cfg.GenOptions(), opts...)...)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(gc, m)
}

// logHook logs the planned classes before generation.
func logHook(logger *zerolog.Logger) gen.Hook {
	return func(next gen.Generator) gen.Generator {
		return gen.GenerateFunc(func(g *gen.Graph) error {
			for _, t := range g.Nodes {
				logger.Debug().
					Str("class", t.Name).
					Str("collection", t.Collection).
					Int("scalars", len(t.Scalars())).
					Int("links", len(t.Links())).
					Msg("planned")
			}
			return next.Generate(g)
		})
	}
}
