// Command datefmt formats and parses date/time strings with template
// patterns such as "YYYY-MM-DD HH:mm:ss".
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/datefmt/datefmt-go/pkg/datefmt"
)

var (
	// global flags
	verbose      bool
	nowFlag      string
	locationFlag string

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "datefmt",
	Short: "Format and parse dates with template patterns",
	Long: `datefmt renders times through template patterns and extracts
timestamps from text using the same directives.

Directives:
  YYYY YY Y     year (4-digit, 2-digit, unpadded)
  MMM MM M      month (abbreviation, parse only; 2-digit; unpadded)
  DD D          day of month
  HH mm ss      hour, minute, second
  dddd ddd      weekday name (format only)
  Z             zone offset +HHMM (parse only)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log parse failures to stderr")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "",
		"Fix the current time (RFC3339), used for missing fields")
	rootCmd.PersistentFlags().StringVar(&locationFlag, "location", "",
		"IANA time zone for results without a zone offset (e.g., Asia/Tokyo)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger returns a debug-level text logger when verbose is set and a
// discarding logger otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// clock is the result of --now and --location. A nil now means the flag was
// not given.
type clock struct {
	now *time.Time
	loc *time.Location
}

// clockFlags resolves --now and --location for cmd.
func clockFlags(cmd *cobra.Command) (c clock, err error) {
	flags := cmd.Flags()
	if flags.Changed("now") {
		now, err := time.Parse(time.RFC3339, nowFlag)
		if err != nil {
			return clock{}, fmt.Errorf("invalid --now format: %w", err)
		}
		c.now = &now
	}
	if flags.Changed("location") {
		c.loc, err = time.LoadLocation(locationFlag)
		if err != nil {
			return clock{}, fmt.Errorf("invalid --location: %w", err)
		}
	}
	return c, nil
}

// parseOptions builds the datefmt options shared by parse and follow.
func parseOptions(cmd *cobra.Command, anchored, strictMonth bool) ([]datefmt.ParseOption, error) {
	c, err := clockFlags(cmd)
	if err != nil {
		return nil, err
	}

	opts := []datefmt.ParseOption{
		datefmt.WithLogger(logger),
		datefmt.WithAnchored(anchored),
		datefmt.WithFallbackToCurrentMonth(!strictMonth),
	}
	if c.now != nil {
		opts = append(opts, datefmt.WithNow(*c.now))
	}
	if c.loc != nil {
		opts = append(opts, datefmt.WithLocation(c.loc))
	}
	return opts, nil
}
