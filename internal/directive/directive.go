// Package directive holds the pattern vocabulary shared by the formatter and
// the parser: the two ordered directive tables and the tokenizer that splits a
// pattern into literal and directive segments.
package directive

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ID identifies the date/time field a directive refers to.
type ID int

const (
	YearFull    ID = iota // YYYY
	YearShort             // YY
	Year                  // Y
	MonthAbbr             // MMM
	Month2                // MM
	Month                 // M
	Day2                  // DD
	Day                   // D
	Hour                  // HH
	Minute                // mm
	Second                // ss
	Weekday               // dddd
	WeekdayAbbr           // ddd
	Zone                  // Z
)

var idNames = [...]string{
	YearFull: "YYYY", YearShort: "YY", Year: "Y",
	MonthAbbr: "MMM", Month2: "MM", Month: "M",
	Day2: "DD", Day: "D", Hour: "HH", Minute: "mm", Second: "ss",
	Weekday: "dddd", WeekdayAbbr: "ddd", Zone: "Z",
}

func (id ID) String() string {
	if id < 0 || int(id) >= len(idNames) {
		return "ID(" + strconv.Itoa(int(id)) + ")"
	}
	return idNames[id]
}

// Directive is one entry of a directive table.
type Directive struct {
	Token string
	ID    ID

	// Render produces the directive's text for t. Nil in the parse table.
	Render func(t time.Time) string

	// Expr is the capture group matched for the directive. Empty in the
	// format table.
	Expr string
}

var (
	weekdays     = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	weekdaysAbbr = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// monthAbbr maps a lowercase three-letter month name to its number.
var monthAbbr = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// LookupMonth resolves a three-letter month abbreviation, ignoring case.
func LookupMonth(abbr string) (int, bool) {
	m, ok := monthAbbr[strings.ToLower(abbr)]
	return m, ok
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// lastTwo keeps the final two characters of the decimal year, so year 5
// renders as "5" and year 123 as "23".
func lastTwo(year int) string {
	s := strconv.Itoa(year)
	if len(s) <= 2 {
		return s
	}
	return s[len(s)-2:]
}

// formatTable is matched in order at each position of the pattern. Tokens
// that prefix one another (YYYY/YY/Y, MM/M, DD/D, dddd/ddd) are listed
// longest-first so the shorter token never splits a longer one.
var formatTable = []Directive{
	{Token: "YYYY", ID: YearFull, Render: func(t time.Time) string { return pad(t.Year(), 4) }},
	{Token: "YY", ID: YearShort, Render: func(t time.Time) string { return lastTwo(t.Year()) }},
	{Token: "Y", ID: Year, Render: func(t time.Time) string { return strconv.Itoa(t.Year()) }},
	{Token: "MM", ID: Month2, Render: func(t time.Time) string { return pad(int(t.Month()), 2) }},
	{Token: "M", ID: Month, Render: func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{Token: "DD", ID: Day2, Render: func(t time.Time) string { return pad(t.Day(), 2) }},
	{Token: "D", ID: Day, Render: func(t time.Time) string { return strconv.Itoa(t.Day()) }},
	{Token: "HH", ID: Hour, Render: func(t time.Time) string { return pad(t.Hour(), 2) }},
	{Token: "mm", ID: Minute, Render: func(t time.Time) string { return pad(t.Minute(), 2) }},
	{Token: "ss", ID: Second, Render: func(t time.Time) string { return pad(t.Second(), 2) }},
	{Token: "dddd", ID: Weekday, Render: func(t time.Time) string { return weekdays[t.Weekday()] }},
	{Token: "ddd", ID: WeekdayAbbr, Render: func(t time.Time) string { return weekdaysAbbr[t.Weekday()] }},
}

// parseTable is sorted by token length, descending; ties keep this order.
var parseTable = []Directive{
	{Token: "YYYY", ID: YearFull, Expr: `(\d{4})`},
	{Token: "MMM", ID: MonthAbbr, Expr: `([A-Za-z]{3})`},
	{Token: "YY", ID: YearShort, Expr: `(\d{2})`},
	{Token: "MM", ID: Month2, Expr: `(\d{2})`},
	{Token: "DD", ID: Day2, Expr: `(\d{2})`},
	{Token: "HH", ID: Hour, Expr: `(\d{2})`},
	{Token: "mm", ID: Minute, Expr: `(\d{2})`},
	{Token: "ss", ID: Second, Expr: `(\d{2})`},
	{Token: "Z", ID: Zone, Expr: `([+-]\d{4})`},
	{Token: "M", ID: Month, Expr: `(\d{1,2})`},
	{Token: "D", ID: Day, Expr: `(\d{1,2})`},
}

// Table is an ordered directive set with its precompiled token alternation.
type Table struct {
	entries []Directive
	byToken map[string]*Directive
	re      *regexp.Regexp
}

func newTable(entries []Directive) *Table {
	tokens := make([]string, len(entries))
	byToken := make(map[string]*Directive, len(entries))
	for i := range entries {
		tokens[i] = regexp.QuoteMeta(entries[i].Token)
		byToken[entries[i].Token] = &entries[i]
	}
	return &Table{
		entries: entries,
		byToken: byToken,
		re:      regexp.MustCompile(strings.Join(tokens, "|")),
	}
}

var (
	// Format is the formatter's directive set.
	Format = newTable(formatTable)
	// Parse is the parser's directive set.
	Parse = newTable(parseTable)
)

// tokens returns the table's tokens in match order.
func (t *Table) tokens() []string {
	out := make([]string, len(t.entries))
	for i, d := range t.entries {
		out[i] = d.Token
	}
	return out
}

// lookup returns the directive for an exact token.
func (t *Table) lookup(token string) (*Directive, bool) {
	d, ok := t.byToken[token]
	return d, ok
}

// Segment is either a literal run (Directive == nil) or a single directive.
type Segment struct {
	Literal   string
	Directive *Directive
}

// Tokenize splits pattern into segments, left to right. Adjacent literal
// characters are merged into one segment.
func (t *Table) Tokenize(pattern string) []Segment {
	var segs []Segment
	last := 0
	for _, loc := range t.re.FindAllStringIndex(pattern, -1) {
		if loc[0] > last {
			segs = append(segs, Segment{Literal: pattern[last:loc[0]]})
		}
		segs = append(segs, Segment{Directive: t.byToken[pattern[loc[0]:loc[1]]]})
		last = loc[1]
	}
	if last < len(pattern) {
		segs = append(segs, Segment{Literal: pattern[last:]})
	}
	return segs
}

// Replace substitutes every directive in pattern using fn. Text between
// directives is copied unchanged.
func (t *Table) Replace(pattern string, fn func(d *Directive) string) string {
	return t.re.ReplaceAllStringFunc(pattern, func(tok string) string {
		return fn(t.byToken[tok])
	})
}
