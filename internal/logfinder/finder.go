// Package logfinder locates the newest log file in a directory.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultGlob is the file name pattern used when none is given.
const DefaultGlob = "*.log"

// ErrNoLogFiles is returned when no regular file matches the glob.
var ErrNoLogFiles = errors.New("no log files found")

// candidate caches a file's modification time so the sort does not stat
// files that may have been removed in the meantime.
type candidate struct {
	path    string
	modTime int64
}

// FindLatest returns the most recently modified regular file in dir whose
// name matches glob. An empty glob means DefaultGlob. Symlinks and other
// non-regular files are skipped.
func FindLatest(dir, glob string) (string, error) {
	if glob == "" {
		glob = DefaultGlob
	}
	if filepath.Base(glob) != glob {
		return "", fmt.Errorf("glob %q must not contain a path separator", glob)
	}

	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return "", fmt.Errorf("globbing log files: %w", err)
	}

	candidates := make([]candidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, candidate{path: m, modTime: info.ModTime().UnixNano()})
	}
	if len(candidates) == 0 {
		return "", ErrNoLogFiles
	}

	// newest first, ties broken by name for stable results
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime > candidates[j].modTime
		}
		return candidates[i].path > candidates[j].path
	})
	return candidates[0].path, nil
}

// Resolve returns path unchanged when it is not a directory, and the newest
// file matching glob inside it otherwise.
func Resolve(path, glob string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	return FindLatest(path, glob)
}
