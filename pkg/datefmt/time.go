package datefmt

import "time"

// Time is the result of a parse: either a resolved instant or Invalid.
// The zero value is Invalid.
type Time struct {
	t     time.Time
	valid bool
}

// Invalid is the sentinel returned when text cannot be parsed.
var Invalid = Time{}

// From wraps an existing time.Time as a valid Time.
func From(t time.Time) Time {
	return Time{t: t, valid: true}
}

// Valid reports whether t holds a parsed instant.
func (t Time) Valid() bool {
	return t.valid
}

// Time returns the parsed instant, or the zero time.Time when t is Invalid.
func (t Time) Time() time.Time {
	if !t.valid {
		return time.Time{}
	}
	return t.t
}

// String returns the RFC 3339 form of t, or "invalid time".
func (t Time) String() string {
	if !t.valid {
		return "invalid time"
	}
	return t.t.Format(time.RFC3339)
}

// MarshalJSON encodes a valid Time as an RFC 3339 string and Invalid as null.
// Years outside 0-9999 are written as time.Format renders them.
func (t Time) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	b := make([]byte, 0, len(time.RFC3339Nano)+2)
	b = append(b, '"')
	b = t.t.AppendFormat(b, time.RFC3339Nano)
	b = append(b, '"')
	return b, nil
}
