package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/datefmt/datefmt-go/internal/logfinder"
	"github.com/datefmt/datefmt-go/internal/tailer"
)

var (
	// follow flags
	followPattern      string
	followPatternFiles []string
	followFormat       string
	followFromStart    bool
	followAnchored     bool
	followStrictMonth  bool
	followGlob         string
)

var followCmd = &cobra.Command{
	Use:   "follow FILE|DIR",
	Short: "Follow a growing file and output timestamps",
	Long: `Follow a log file and output a record for every line that contains a
timestamp. Lines without one are skipped.

When given a directory, the most recently modified file matching --glob
is followed. Only lines written after start are read unless --from-start
is given. Rotated or truncated files are reopened. Stop with Ctrl+C.

Examples:
  datefmt follow /var/log/nginx/access.log --pattern 'DD/MMM/YYYY:HH:mm:ss Z'

  datefmt follow app.log --patterns patterns.yaml --from-start --format pretty

  datefmt follow /var/log/myapp --glob 'myapp-*.log' --pattern 'YYYY-MM-DD HH:mm:ss'`,
	Args: cobra.ExactArgs(1),
	RunE: runFollow,
}

func init() {
	followCmd.Flags().StringVar(&followPattern, "pattern", "",
		"Parse pattern")
	followCmd.Flags().StringArrayVarP(&followPatternFiles, "patterns", "p", nil,
		"YAML pattern file (can be specified multiple times)")
	followCmd.Flags().StringVarP(&followFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	followCmd.Flags().BoolVar(&followFromStart, "from-start", false,
		"Read existing content before following")
	followCmd.Flags().BoolVar(&followAnchored, "anchored", false,
		"Require the pattern to match the whole line")
	followCmd.Flags().BoolVar(&followStrictMonth, "strict-month", false,
		"Treat unknown month abbreviations as invalid")
	followCmd.Flags().StringVar(&followGlob, "glob", logfinder.DefaultGlob,
		"File name pattern used when following a directory")
	followCmd.MarkFlagsMutuallyExclusive("pattern", "patterns")
	rootCmd.AddCommand(followCmd)
}

func runFollow(cmd *cobra.Command, args []string) error {
	if !ValidFormats[followFormat] {
		return fmt.Errorf("invalid format %q: must be one of jsonl, pretty", followFormat)
	}

	opts, err := parseOptions(cmd, followAnchored, followStrictMonth)
	if err != nil {
		return err
	}
	m, err := buildMatcher(followPattern, followPatternFiles, opts)
	if err != nil {
		return err
	}

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, err := logfinder.Resolve(args[0], followGlob)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}

	cfg := tailer.DefaultConfig()
	cfg.FromStart = followFromStart

	t, err := tailer.New(ctx, path, cfg)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	defer func() { _ = t.Stop() }()
	logger.Debug("started following", "path", path, "from_start", cfg.FromStart)

	return followLines(ctx, t.Lines(), t.Errors(), m, followFormat, cmd.OutOrStdout(), logger)
}

// followLines outputs a record for every line that yields a valid timestamp
// until a channel closes or ctx is done.
func followLines(ctx context.Context, lines <-chan string, errs <-chan error, m matcher, format string, out io.Writer, log *slog.Logger) error {
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			name, ts, err := m(ctx, line)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if !ts.Valid() {
				continue
			}
			if err := OutputRecord(format, NewRecord(line, name, ts), out); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Warn("follow error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
