package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/datefmt/datefmt-go/pkg/datefmt"
	"github.com/datefmt/datefmt-go/pkg/datefmt/pattern"
)

// matcher extracts a timestamp from one line. name is the pattern text or
// the ID of the pattern that matched.
type matcher func(ctx context.Context, line string) (name string, ts datefmt.Time, err error)

// buildMatcher returns a matcher for a single pattern or, when patternFiles
// is non-empty, for the pattern files tried in the order given.
func buildMatcher(single string, patternFiles []string, opts []datefmt.ParseOption) (matcher, error) {
	if len(patternFiles) == 0 {
		if single == "" {
			return nil, errors.New("a pattern or --patterns is required")
		}
		layout := datefmt.Compile(single)
		return func(_ context.Context, line string) (string, datefmt.Time, error) {
			return single, layout.Parse(line, opts...), nil
		}, nil
	}

	sets := make([]*pattern.Set, 0, len(patternFiles))
	for i, path := range patternFiles {
		s, err := pattern.NewSetFromFile(path)
		if err != nil {
			// errors from the pattern package carry no path
			return nil, fmt.Errorf("pattern file %d: %w", i+1, err)
		}
		sets = append(sets, s)
	}

	return func(ctx context.Context, line string) (string, datefmt.Time, error) {
		for _, s := range sets {
			res, err := s.ParseLine(ctx, line, opts...)
			if err != nil {
				return "", datefmt.Invalid, err
			}
			if res.Matched {
				return res.ID, res.Time, nil
			}
		}
		return "", datefmt.Invalid, nil
	}, nil
}
