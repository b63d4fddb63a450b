package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datefmt/datefmt-go/pkg/datefmt"
)

var formatAt string

var formatCmd = &cobra.Command{
	Use:   "format PATTERN",
	Short: "Render a time through a pattern",
	Long: `Render a time through a pattern.

The time defaults to --now, or the current time when --now is not set.
With --location the time is converted to that zone first.

Examples:
  datefmt format 'YYYY-MM-DD HH:mm:ss'
  datefmt format 'dddd, D/M/Y' --at 2025-01-02T03:04:05Z
  datefmt format 'YYYY/MM/DD HH:mm' --location Asia/Tokyo`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVar(&formatAt, "at", "",
		"Time to render (RFC3339, default: now)")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	c, err := clockFlags(cmd)
	if err != nil {
		return err
	}

	var at time.Time
	switch {
	case cmd.Flags().Changed("at"):
		at, err = time.Parse(time.RFC3339, formatAt)
		if err != nil {
			return fmt.Errorf("invalid --at format: %w", err)
		}
	case c.now != nil:
		at = *c.now
	default:
		at = time.Now()
	}
	if c.loc != nil {
		at = at.In(c.loc)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), datefmt.Format(at, args[0]))
	return err
}
