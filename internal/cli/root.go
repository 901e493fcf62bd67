// Package cli implements the relgen command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/relgen/internal/log"
)

// Version information, set at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

type configKey struct{}

// NewRootCmd returns the relgen root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "relgen",
		Short: "Compile relation schemas into typed Go data-access code",
		Long: `relgen reads a schema of classes and relations and generates, for every
class, identity, view, payload and wire types with store-backed operations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			cfg, err := LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := log.New(cfg.LogOptions(cmd.ErrOrStderr())...)
			if cfg.File != "" {
				logger.Debug().Str("file", cfg.File).Msg("config loaded")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey{}, cfg)
			cmd.SetContext(logger.WithContext(ctx))
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./"+DefaultConfigFile+")")
	flags.String("log-level", "", "log level (debug|info|warn|error)")
	flags.String("log-format", "", "log format (console|json)")
	flags.String("log-file", "", "also write JSON logs to a rotating file")
	_ = root.RegisterFlagCompletionFunc("log-format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"console", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newGenerateCmd(), newInspectCmd(), newVersionCmd())
	return root
}

// Execute runs the root command until it returns or the process is
// interrupted, and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// configFrom returns the configuration loaded by the root command.
func configFrom(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	c, _ := LoadConfig("", nil)
	return c
}

func loggerFrom(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
