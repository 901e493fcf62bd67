// Package log configures the zerolog loggers of the relgen command.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a logging level.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	Disabled   = zerolog.Disabled
)

// Option configures a logger.
type Option func(*options)

type options struct {
	out    io.Writer
	level  Level
	json   bool
	rotate *Rotate
}

// Rotate configures a rotating log file written next to the console.
type Rotate struct {
	Filename   string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	Compress   bool
}

// WithOutput sets the console writer destination. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithLevel sets the minimum level.
func WithLevel(level Level) Option {
	return func(o *options) { o.level = level }
}

// WithJSON writes JSON lines instead of the human-readable console format.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile also writes JSON lines to a rotating file.
func WithFile(r Rotate) Option {
	return func(o *options) { o.rotate = &r }
}

// New returns a logger with the given options.
func New(opts ...Option) zerolog.Logger {
	o := &options{out: os.Stderr, level: InfoLevel}
	for _, opt := range opts {
		opt(o)
	}
	var w io.Writer = o.out
	if !o.json {
		w = console(o.out)
	}
	if o.rotate != nil {
		w = zerolog.MultiLevelWriter(w, &lumberjack.Logger{
			Filename:   o.rotate.Filename,
			MaxSize:    o.rotate.MaxSize,
			MaxAge:     o.rotate.MaxAge,
			MaxBackups: o.rotate.MaxBackups,
			Compress:   o.rotate.Compress,
			LocalTime:  true,
		})
	}
	return zerolog.New(w).Level(o.level).With().Timestamp().Logger()
}

func console(out io.Writer) zerolog.ConsoleWriter {
	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	if f, ok := out.(*os.File); !ok || f != os.Stderr && f != os.Stdout {
		w.NoColor = true
	}
	w.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-5s|", i))
	}
	w.FormatFieldName = func(i any) string {
		return fmt.Sprintf("%s=", i)
	}
	return w
}

// ParseLevel parses a level name such as "debug" or "warn".
func ParseLevel(s string) (Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return InfoLevel, fmt.Errorf("log: %w", err)
	}
	if level == zerolog.NoLevel {
		return InfoLevel, nil
	}
	return level, nil
}

var std = New()

// Default returns the default logger.
func Default() *zerolog.Logger { return &std }

// SetDefault replaces the default logger.
func SetDefault(l zerolog.Logger) { std = l }
