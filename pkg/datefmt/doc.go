// Package datefmt converts between timestamps and text using token patterns
// such as "YYYY-MM-DD HH:mm:ss".
//
// This package allows you to:
//   - Render a time.Time with [Format]
//   - Parse text back into a timestamp with [Parse] or a compiled [Layout]
//   - Keep named, reusable patterns in YAML files (see the pattern subpackage)
//
// # Formatting
//
//	s := datefmt.Format(time.Now(), "YYYY/MM/DD (ddd) HH:mm")
//	// 2024/05/20 (Mon) 10:00
//
// Formatting never fails. Characters that are not directives, including
// lookalikes such as "SSS" or "yyyy", are copied to the output unchanged.
//
// # Parsing
//
//	ts := datefmt.Parse("25-Dec-2023 13:05:00 +0900", "DD-MMM-YYYY HH:mm:ss Z")
//	if !ts.Valid() {
//	    // text did not match, or named an impossible date
//	}
//	t := ts.Time()
//
// Parse does not return an error. A failed parse yields [Invalid], which
// callers detect with [Time.Valid].
//
// Fields the pattern does not mention are filled in from a single snapshot of
// the current time: the year, month and day default to today, while hour,
// minute and second default to zero. A two-digit year (YY) resolves to the
// latest matching year that is not after the current year. Use [WithNow] to pin
// the snapshot, e.g. in tests.
//
// # Directives
//
//	Token  Meaning                        Format  Parse
//	YYYY   year, 4 digits zero-padded     yes     yes
//	YY     year, last 2 digits            yes     yes
//	Y      year, unpadded                 yes     no
//	MMM    month, 3-letter English name   no      yes (any case)
//	MM     month, 2 digits                yes     yes
//	M      month, unpadded                yes     yes (1-2 digits)
//	DD     day, 2 digits                  yes     yes
//	D      day, unpadded                  yes     yes (1-2 digits)
//	HH     hour 00-23                     yes     yes
//	mm     minute                         yes     yes
//	ss     second                         yes     yes
//	dddd   weekday name (Sunday)          yes     no
//	ddd    weekday abbreviation (Sun)     yes     no
//	Z      zone offset, +HHMM / -HHMM     no      yes
//
// Directives are matched case-sensitively and longer tokens take precedence
// over their prefixes, so "YYYY" is never read as "YY" followed by "YY".
//
// # Matching
//
// By default a pattern may match anywhere inside the text, which makes it easy
// to pull a timestamp out of a log line. Pass WithAnchored(true) to require the
// whole text to match.
package datefmt
