package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/datefmt/datefmt-go/pkg/datefmt"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// Record is the result of parsing one input.
type Record struct {
	Input   string       `json:"input"`
	Pattern string       `json:"pattern"` // pattern text, or the matching pattern ID for pattern files
	Valid   bool         `json:"valid"`
	Time    datefmt.Time `json:"time"`
	Unix    *int64       `json:"unix"`
}

// NewRecord builds a Record for input and its parse result.
func NewRecord(input, pattern string, ts datefmt.Time) Record {
	r := Record{Input: input, Pattern: pattern, Valid: ts.Valid(), Time: ts}
	if ts.Valid() {
		unix := ts.Time().Unix()
		r.Unix = &unix
	}
	return r
}

// OutputRecord writes a record in the specified format to the writer.
func OutputRecord(format string, r Record, out io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSON(r, out)
	case "pretty":
		return OutputPretty(r, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes a record as JSON Lines format.
func OutputJSON(r Record, out io.Writer) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes a record in human-readable format.
func OutputPretty(r Record, out io.Writer) error {
	ts := "invalid"
	if r.Valid {
		ts = r.Time.Time().Format("2006-01-02 15:04:05 -0700")
	}

	pattern := r.Pattern
	if pattern == "" {
		pattern = "-"
	}

	_, err := fmt.Fprintf(out, "[%s] %s %s\n", ts, quoteIfNeeded(pattern), quoteIfNeeded(r.Input))
	return err
}

// quoteIfNeeded quotes a value if it contains spaces, equals signs, quotes,
// backslashes or control characters.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}

	needsQuote := false
	for _, c := range v {
		if c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			sb.WriteString(fmt.Sprintf(`\x%02x`, c))
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
