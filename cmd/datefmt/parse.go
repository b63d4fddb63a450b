package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// errInvalidInput is returned by parse when --fail-invalid is set and at
// least one input did not parse.
var errInvalidInput = errors.New("one or more inputs did not parse")

var (
	// parse flags
	parseFormat       string
	parsePatternFiles []string
	parseAnchored     bool
	parseStrictMonth  bool
	parseFailInvalid  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [PATTERN] [TEXT...]",
	Short: "Extract timestamps from text",
	Long: `Extract a timestamp from each input using a pattern.

Inputs are the TEXT arguments, or the lines of stdin when none are given.
With --patterns every argument is an input and the pattern files are tried
in order, the first valid timestamp winning.

Each input produces one record. JSON Lines output has the fields
input, pattern, valid, time and unix.

Examples:
  # Parse a single value
  datefmt parse 'YYYY-MM-DD HH:mm:ss' '2023-12-25 15:30:45'

  # Extract timestamps from an access log
  datefmt parse 'DD/MMM/YYYY:HH:mm:ss Z' < access.log

  # Use named patterns from a file
  datefmt parse --patterns patterns.yaml < app.log

  # Human-readable output, exit non-zero on any failure
  datefmt parse 'YY/M/D' 23/1/2 --format pretty --fail-invalid`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	parseCmd.Flags().StringArrayVarP(&parsePatternFiles, "patterns", "p", nil,
		"YAML pattern file (can be specified multiple times)")
	parseCmd.Flags().BoolVar(&parseAnchored, "anchored", false,
		"Require the pattern to match the whole input")
	parseCmd.Flags().BoolVar(&parseStrictMonth, "strict-month", false,
		"Treat unknown month abbreviations as invalid instead of using the current month")
	parseCmd.Flags().BoolVar(&parseFailInvalid, "fail-invalid", false,
		"Exit with an error if any input does not parse")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if !ValidFormats[parseFormat] {
		return fmt.Errorf("invalid format %q: must be one of jsonl, pretty", parseFormat)
	}

	var single string
	if len(parsePatternFiles) == 0 {
		if len(args) == 0 {
			return errors.New("a pattern or --patterns is required")
		}
		single, args = args[0], args[1:]
	}

	opts, err := parseOptions(cmd, parseAnchored, parseStrictMonth)
	if err != nil {
		return err
	}
	m, err := buildMatcher(single, parsePatternFiles, opts)
	if err != nil {
		return err
	}

	var invalid int
	if len(args) > 0 {
		invalid, err = parseInputs(cmd.Context(), m, args, parseFormat, cmd.OutOrStdout())
	} else {
		invalid, err = parseReader(cmd.Context(), m, cmd.InOrStdin(), parseFormat, cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}

	if invalid > 0 {
		logger.Debug("inputs did not parse", "count", invalid)
		if parseFailInvalid {
			return errInvalidInput
		}
	}
	return nil
}

// parseInputs writes one record per input and returns how many were invalid.
func parseInputs(ctx context.Context, m matcher, inputs []string, format string, out io.Writer) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var invalid int
	for _, input := range inputs {
		name, ts, err := m(ctx, input)
		if err != nil {
			return invalid, err
		}
		if !ts.Valid() {
			invalid++
		}
		if err := OutputRecord(format, NewRecord(input, name, ts), out); err != nil {
			return invalid, fmt.Errorf("output error: %w", err)
		}
	}
	return invalid, nil
}

// parseReader is parseInputs over the lines of r.
func parseReader(ctx context.Context, m matcher, r io.Reader, format string, out io.Writer) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var invalid int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		n, err := parseInputs(ctx, m, []string{line}, format, out)
		invalid += n
		if err != nil {
			return invalid, err
		}
	}
	if err := scanner.Err(); err != nil {
		return invalid, fmt.Errorf("read input: %w", err)
	}
	return invalid, nil
}
