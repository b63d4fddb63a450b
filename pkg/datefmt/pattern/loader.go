package pattern

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/datefmt/datefmt-go/internal/safefile"
)

const (
	// MaxPatternFileSize is the maximum size of a pattern file (1MB).
	MaxPatternFileSize = 1 * 1024 * 1024

	// MaxPatternLength is the maximum length of a single pattern in characters.
	MaxPatternLength = 512

	// MaxPatternCount is the maximum number of patterns in a file.
	MaxPatternCount = 1000

	// SupportedVersion is the only pattern file version understood.
	SupportedVersion = 1
)

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// sanitizePathError strips the path from an os.PathError.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

// Load reads and validates the pattern file at path. Only regular files of
// at most MaxPatternFileSize bytes are accepted.
func Load(path string) (*PatternFile, error) {
	data, err := safefile.ReadRegular(path, MaxPatternFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", sanitizePathError(err))
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a pattern file held in memory.
func LoadBytes(data []byte) (*PatternFile, error) {
	if len(data) == 0 {
		return nil, errors.New("pattern file is empty")
	}
	if len(data) > MaxPatternFileSize {
		return nil, fmt.Errorf("pattern file too large: %d bytes (max %d)", len(data), MaxPatternFileSize)
	}

	var pf PatternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := pf.Validate(); err != nil {
		return nil, err
	}
	return &pf, nil
}

// Validate checks the version, the pattern count, the fields of every
// pattern and the uniqueness of IDs. It does not compile patterns.
func (pf *PatternFile) Validate() error {
	if err := validate.Struct(pf); err != nil {
		fe, ok := firstFieldError(err)
		if !ok {
			return err
		}
		return &ValidationError{Field: fe.Field(), Message: fileMessage(fe, pf)}
	}

	seenIDs := make(map[string]int, len(pf.Patterns))
	for i, p := range pf.Patterns {
		if err := validate.Struct(p); err != nil {
			fe, ok := firstFieldError(err)
			if !ok {
				return &PatternError{Index: i, ID: p.ID, Field: "pattern", Message: err.Error(), Cause: err}
			}
			return &PatternError{Index: i, ID: p.ID, Field: fe.Field(), Message: patternMessage(fe)}
		}

		if prev, exists := seenIDs[p.ID]; exists {
			return &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "id",
				Message: fmt.Sprintf("duplicate id (previously defined at pattern[%d])", prev),
			}
		}
		seenIDs[p.ID] = i
	}

	return nil
}

func firstFieldError(err error) (validator.FieldError, bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return nil, false
	}
	return errs[0], true
}

func fileMessage(fe validator.FieldError, pf *PatternFile) string {
	switch fe.Field() {
	case "version":
		return fmt.Sprintf("unsupported version %d (only version %d is supported)", pf.Version, SupportedVersion)
	case "patterns":
		if fe.Tag() == "min" {
			return "at least one pattern is required"
		}
		return fmt.Sprintf("too many patterns (%d), maximum allowed is %d", len(pf.Patterns), MaxPatternCount)
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}

func patternMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("pattern too long: %d characters (max %s)", len([]rune(fe.Value().(string))), fe.Param())
	case "timezone":
		return fmt.Sprintf("unknown location %q", fe.Value())
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
