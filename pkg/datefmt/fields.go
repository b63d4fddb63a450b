package datefmt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/datefmt/datefmt-go/internal/directive"
)

// Reasons reported to the logger when a parse yields Invalid.
const (
	reasonNoMatch      = "no_match"
	reasonUnknownMonth = "unknown_month"
	reasonOutOfRange   = "out_of_range"
)

// fieldSet holds the text captured for each directive. A directive that
// occurs more than once keeps its last capture.
type fieldSet map[directive.ID]string

func newFieldSet(ids []directive.ID, captures []string) fieldSet {
	fs := make(fieldSet, len(ids))
	for i, id := range ids {
		if i < len(captures) {
			fs[id] = captures[i]
		}
	}
	return fs
}

// first returns the capture for the first present id.
func (fs fieldSet) first(ids ...directive.ID) (string, bool) {
	for _, id := range ids {
		if v, ok := fs[id]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// number returns the first present id as an int, or def when none is present.
func (fs fieldSet) number(def int, ids ...directive.ID) int {
	v, ok := fs.first(ids...)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

func (fs fieldSet) String() string {
	parts := make([]string, 0, len(fs))
	for id, v := range fs {
		parts = append(parts, fmt.Sprintf("%s=%s", id, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

// pivotYear maps a two-digit year onto the latest year ending in those
// digits that is not after current.
func pivotYear(yy, current int) int {
	candidate := current/100*100 + yy
	if candidate > current {
		return candidate - 100
	}
	return candidate
}

func (fs fieldSet) year(current int) int {
	if v, ok := fs.first(directive.YearFull); ok {
		n, _ := strconv.Atoi(v)
		return n
	}
	if v, ok := fs.first(directive.YearShort); ok {
		yy, _ := strconv.Atoi(v)
		return pivotYear(yy, current)
	}
	return current
}

func (fs fieldSet) month(current time.Month, fallback bool) (int, bool) {
	if v, ok := fs.first(directive.MonthAbbr); ok {
		if m, ok := directive.LookupMonth(v); ok {
			return m, true
		}
		if fallback {
			return int(current), true
		}
		return 0, false
	}
	return fs.number(int(current), directive.Month2, directive.Month), true
}

// zone parses a ±HHMM offset.
func zone(v string) (*time.Location, bool) {
	if len(v) != 5 || (v[0] != '+' && v[0] != '-') {
		return nil, false
	}
	hh, err1 := strconv.Atoi(v[1:3])
	mm, err2 := strconv.Atoi(v[3:5])
	if err1 != nil || err2 != nil || hh > 23 || mm > 59 {
		return nil, false
	}
	offset := hh*3600 + mm*60
	if v[0] == '-' {
		offset = -offset
	}
	return time.FixedZone("", offset), true
}

func daysIn(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// resolve fills in omitted fields and composes the final instant. A non-empty
// reason means the fields do not describe a valid time.
func (fs fieldSet) resolve(now time.Time, cfg *parseConfig) (time.Time, string) {
	loc := cfg.location
	if loc == nil {
		loc = now.Location()
	}
	today := now.In(loc)

	year := fs.year(today.Year())
	month, ok := fs.month(today.Month(), cfg.fallbackToCurrentMonth)
	if !ok {
		return time.Time{}, reasonUnknownMonth
	}
	day := fs.number(today.Day(), directive.Day2, directive.Day)
	hour := fs.number(0, directive.Hour)
	minute := fs.number(0, directive.Minute)
	second := fs.number(0, directive.Second)

	if v, ok := fs.first(directive.Zone); ok {
		z, ok := zone(v)
		if !ok {
			return time.Time{}, reasonOutOfRange
		}
		loc = z
	}

	if year < 0 ||
		month < 1 || month > 12 ||
		day < 1 || day > daysIn(month, year) ||
		hour < 0 || hour > 23 ||
		minute < 0 || minute > 59 ||
		second < 0 || second > 59 {
		return time.Time{}, reasonOutOfRange
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), ""
}
