// Package pattern loads named date/time patterns from YAML files and tries
// them in order against input lines.
package pattern

// PatternFile is the structure of a YAML pattern file.
//
// Example YAML file:
//
//	version: 1
//	patterns:
//	  - id: apache_clf
//	    pattern: 'DD/MMM/YYYY:HH:mm:ss Z'
//	  - id: iso_local
//	    pattern: 'YYYY-MM-DD HH:mm:ss'
//	    location: UTC
type PatternFile struct {
	// Version is the file format version. Only version 1 is supported.
	Version int `yaml:"version" validate:"eq=1"`

	// Patterns is tried in order by a Set.
	Patterns []Pattern `yaml:"patterns" validate:"min=1,max=1000"`
}

// Pattern is a single named parse pattern.
type Pattern struct {
	// ID identifies the pattern and must be unique within a file.
	ID string `yaml:"id" validate:"required"`

	// Pattern uses the datefmt parse directives (YYYY, MMM, Z, ...).
	Pattern string `yaml:"pattern" validate:"required,max=512"`

	// Anchored requires the pattern to match a whole line.
	Anchored bool `yaml:"anchored"`

	// Location is an IANA zone name for results without a Z directive.
	// Empty means the caller's location.
	Location string `yaml:"location,omitempty" validate:"omitempty,timezone"`
}
