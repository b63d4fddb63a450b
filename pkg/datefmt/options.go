package datefmt

import (
	"io"
	"log/slog"
	"time"
)

// ParseOption configures Parse behavior using the functional options pattern.
type ParseOption func(*parseConfig)

// parseConfig holds the resolved settings for a single Parse call.
type parseConfig struct {
	clock                  func() time.Time
	location               *time.Location
	anchored               bool
	fallbackToCurrentMonth bool
	logger                 *slog.Logger
}

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func defaultParseConfig() *parseConfig {
	return &parseConfig{
		clock:                  time.Now,
		fallbackToCurrentMonth: true,
		logger:                 discardLogger,
	}
}

func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithNow fixes the "current time" snapshot used to fill in missing fields.
func WithNow(now time.Time) ParseOption {
	return func(c *parseConfig) {
		c.clock = func() time.Time { return now }
	}
}

// WithClock sets the function used to read the current time.
// It is called exactly once per Parse. A nil clock is ignored.
func WithClock(clock func() time.Time) ParseOption {
	return func(c *parseConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLocation sets the location for results whose pattern has no Z
// directive, and the location in which today's date is read for defaults.
// Default: the location of the current time snapshot (time.Local for the
// system clock).
func WithLocation(loc *time.Location) ParseOption {
	return func(c *parseConfig) {
		c.location = loc
	}
}

// WithAnchored requires the pattern to match the entire text rather than any
// substring of it. Default: false.
func WithAnchored(anchored bool) ParseOption {
	return func(c *parseConfig) {
		c.anchored = anchored
	}
}

// WithFallbackToCurrentMonth controls what happens when an MMM value is not a
// known month abbreviation. When true (default) the current month is used;
// when false the result is Invalid.
func WithFallbackToCurrentMonth(fallback bool) ParseOption {
	return func(c *parseConfig) {
		c.fallbackToCurrentMonth = fallback
	}
}

// WithLogger sets a logger that receives a debug record whenever a parse
// yields Invalid. If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		if logger != nil {
			c.logger = logger
		} else {
			c.logger = discardLogger
		}
	}
}
