package pattern

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datefmt/datefmt-go/pkg/datefmt"
)

// Result is the outcome of matching one line against a Set.
type Result struct {
	Matched bool
	ID      string       // ID of the pattern that matched
	Time    datefmt.Time // Invalid when Matched is false
}

// Set is an ordered list of compiled patterns.
// A Set is safe for concurrent use by multiple goroutines.
type Set struct {
	entries []*entry
}

type entry struct {
	id     string
	layout *datefmt.Layout
	opts   []datefmt.ParseOption
}

// NewSet compiles every pattern in pf. Location names are resolved here.
func NewSet(pf *PatternFile) (*Set, error) {
	if pf == nil {
		return nil, errors.New("pattern file is nil")
	}

	entries := make([]*entry, 0, len(pf.Patterns))
	for i, p := range pf.Patterns {
		e := &entry{id: p.ID, layout: datefmt.Compile(p.Pattern)}
		if p.Anchored {
			e.opts = append(e.opts, datefmt.WithAnchored(true))
		}
		if p.Location != "" {
			loc, err := time.LoadLocation(p.Location)
			if err != nil {
				return nil, &PatternError{
					Index:   i,
					ID:      p.ID,
					Field:   "location",
					Message: fmt.Sprintf("unknown location %q", p.Location),
					Cause:   err,
				}
			}
			e.opts = append(e.opts, datefmt.WithLocation(loc))
		}
		entries = append(entries, e)
	}

	return &Set{entries: entries}, nil
}

// NewSetFromFile loads a pattern file and compiles it in one step.
func NewSetFromFile(path string) (*Set, error) {
	pf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewSet(pf)
}

// ParseLine tries each pattern in file order and returns the first valid
// timestamp. Options in opts apply to every pattern; a pattern's own
// anchored and location settings take precedence.
//
// The only error returned is ctx.Err().
func (s *Set) ParseLine(ctx context.Context, line string, opts ...datefmt.ParseOption) (Result, error) {
	for _, e := range s.entries {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		ts := e.layout.Parse(line, append(opts[:len(opts):len(opts)], e.opts...)...)
		if ts.Valid() {
			return Result{Matched: true, ID: e.id, Time: ts}, nil
		}
	}
	return Result{}, nil
}

// IDs returns the pattern IDs in file order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.id
	}
	return ids
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	return len(s.entries)
}
