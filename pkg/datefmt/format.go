package datefmt

import (
	"time"

	"github.com/datefmt/datefmt-go/internal/directive"
)

// Format renders t according to pattern.
// Recognized directives are replaced by t's calendar fields in t's own
// location; everything else is copied verbatim. An empty pattern yields "".
func Format(t time.Time, pattern string) string {
	return directive.Format.Replace(pattern, func(d *directive.Directive) string {
		return d.Render(t)
	})
}
