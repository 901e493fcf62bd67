package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/syssam/relgen/compiler/gen"
	"github.com/syssam/relgen/internal/log"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory when --config is not given.
const DefaultConfigFile = "relgen.yaml"

// EnvPrefix prefixes the environment variables read as configuration.
// RELGEN_LOG_LEVEL sets log.level.
const EnvPrefix = "RELGEN_"

// Config is the configuration of the relgen command.
type Config struct {
	// Schema is the schema file to compile.
	Schema string `koanf:"schema"`
	// Target is the output directory.
	Target string `koanf:"target"`
	// Package is the import path of the generated package.
	Package string    `koanf:"package"`
	Header  string    `koanf:"header"`
	Runtime string    `koanf:"runtime"`
	Workers int       `koanf:"workers"`
	Log     LogConfig `koanf:"log"`

	// File is the configuration file that was loaded, if any.
	File string `koanf:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

func defaults() map[string]any {
	return map[string]any{
		"schema":     "schema.yaml",
		"target":     "model",
		"workers":    0,
		"log.level":  "info",
		"log.format": "console",
	}
}

// LoadConfig loads the configuration. Precedence, highest first: flags
// that were set, RELGEN_ environment variables, the configuration file,
// defaults. An explicit cfgFile must exist; the default one is optional.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" || f.Name == "watch" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "."), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = path
	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// GenOptions returns the generator options of the configuration.
func (c *Config) GenOptions() []gen.Option {
	opts := []gen.Option{gen.WithTarget(c.Target)}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.Runtime != "" {
		opts = append(opts, gen.WithRuntime(c.Runtime))
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	return opts
}

// LogOptions returns the logger options of the configuration, writing the
// console output to w.
func (c *Config) LogOptions(w io.Writer) []log.Option {
	level, _ := log.ParseLevel(c.Log.Level)
	opts := []log.Option{log.WithOutput(w), log.WithLevel(level)}
	if c.Log.Format == "json" {
		opts = append(opts, log.WithJSON())
	}
	if c.Log.File != "" {
		opts = append(opts, log.WithFile(log.Rotate{Filename: c.Log.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28}))
	}
	return opts
}
