package datefmt

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/datefmt/datefmt-go/internal/directive"
	"github.com/datefmt/datefmt-go/internal/layoutcache"
)

// Layout is a parse pattern compiled to a regular expression.
// A Layout is immutable and safe for concurrent use by multiple goroutines.
type Layout struct {
	pattern  string
	re       *regexp.Regexp
	anchored *regexp.Regexp
	fields   []directive.ID // fields[i] is the directive behind capture group i+1
	tokens   []string
}

// Compile turns pattern into a Layout. Every non-directive character is
// escaped, so compilation cannot fail.
func Compile(pattern string) *Layout {
	var (
		sb     strings.Builder
		fields []directive.ID
		tokens []string
	)
	for _, seg := range directive.Parse.Tokenize(pattern) {
		if seg.Directive == nil {
			quoteLiteral(&sb, seg.Literal)
			continue
		}
		sb.WriteString(seg.Directive.Expr)
		fields = append(fields, seg.Directive.ID)
		tokens = append(tokens, seg.Directive.Token)
	}

	expr := sb.String()
	return &Layout{
		pattern:  pattern,
		re:       regexp.MustCompile(expr),
		anchored: regexp.MustCompile(`^(?:` + expr + `)$`),
		fields:   fields,
		tokens:   tokens,
	}
}

// quoteLiteral escapes s for use in a regexp. Each invalid UTF-8 byte is
// written as U+FFFD, which is what the matcher decodes such a byte to in the
// text being parsed.
func quoteLiteral(sb *strings.Builder, s string) {
	for len(s) > 0 {
		i := 0
		for i < len(s) {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				break
			}
			i += size
		}
		sb.WriteString(regexp.QuoteMeta(s[:i]))
		if i < len(s) {
			sb.WriteString(`\x{FFFD}`)
			i++
		}
		s = s[i:]
	}
}

// Pattern returns the source pattern.
func (l *Layout) Pattern() string {
	return l.pattern
}

// String returns the synthesized regular expression.
func (l *Layout) String() string {
	return l.re.String()
}

// Directives returns the directive tokens captured by the layout, in the
// order they appear in the pattern.
func (l *Layout) Directives() []string {
	out := make([]string, len(l.tokens))
	copy(out, l.tokens)
	return out
}

// Parse matches text against the layout and resolves the captured fields
// into a Time. It returns Invalid when the text does not match or the
// resolved fields do not form a real calendar date and clock time.
func (l *Layout) Parse(text string, opts ...ParseOption) Time {
	cfg := applyParseOptions(opts)
	now := cfg.clock()

	re := l.re
	if cfg.anchored {
		re = l.anchored
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		cfg.logger.Debug("parse failed", "reason", reasonNoMatch, "pattern", l.pattern)
		return Invalid
	}

	fs := newFieldSet(l.fields, m[1:])
	t, reason := fs.resolve(now, cfg)
	if reason != "" {
		cfg.logger.Debug("parse failed", "reason", reason, "pattern", l.pattern, "fields", fs.String())
		return Invalid
	}
	return From(t)
}

var layouts = layoutcache.New[*Layout](layoutcache.DefaultSize)

// Parse parses text using pattern. Compiled patterns are cached, so repeated
// calls with the same pattern only pay for matching.
func Parse(text, pattern string, opts ...ParseOption) Time {
	return layouts.Get(pattern, Compile).Parse(text, opts...)
}
