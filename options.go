package pdfsniff

import (
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/pdfsniff/internal/scanner"
	"github.com/tsawler/pdfsniff/probe"
)

// Defaults for the detection limits.
const (
	DefaultMaxScanLines     = scanner.DefaultMaxLines
	DefaultMaxStreamLength  = 64 << 20
	DefaultMaxDecodedLength = 64 << 20
)

// Option is a functional option for configuring Detect.
type Option func(*config)

type config struct {
	debug            bool
	logger           *slog.Logger
	maxScanLines     int
	maxStreamLength  int64
	maxDecodedLength int64
	probes           probe.Set
}

// defaultConfig returns the configuration used when no options are given.
func defaultConfig() config {
	return config{
		maxScanLines:     DefaultMaxScanLines,
		maxStreamLength:  DefaultMaxStreamLength,
		maxDecodedLength: DefaultMaxDecodedLength,
		probes:           probe.Default(),
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = newLogger(c.debug)
	}
	return c
}

func newLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// WithDebug enables diagnostic logging to stderr at debug level. It has no
// effect on the result, and none at all when WithLogger is also given.
func WithDebug(debug bool) Option {
	return func(c *config) {
		c.debug = debug
	}
}

// WithLogger sends diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxScanLines limits how many lines of the document body are
// examined. Values <= 0 restore DefaultMaxScanLines.
func WithMaxScanLines(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultMaxScanLines
		}
		c.maxScanLines = n
	}
}

// WithMaxStreamLength skips, unread, any stream whose declared Length
// exceeds n bytes. Values <= 0 restore DefaultMaxStreamLength.
func WithMaxStreamLength(n int64) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultMaxStreamLength
		}
		c.maxStreamLength = n
	}
}

// WithMaxDecodedLength caps the decompressed size of a stream. Output past
// the cap is dropped without error. Values <= 0 restore
// DefaultMaxDecodedLength.
func WithMaxDecodedLength(n int64) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultMaxDecodedLength
		}
		c.maxDecodedLength = n
	}
}

// WithProbes replaces the probe set. Probes are consulted in the order
// given. With no probes every PDF is classified as generic.
func WithProbes(probes ...probe.Probe) Option {
	return func(c *config) {
		c.probes = probe.Set(probes)
	}
}
