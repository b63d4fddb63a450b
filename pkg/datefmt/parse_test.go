package datefmt_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/datefmt/datefmt-go/pkg/datefmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNow is the fixed "current time" used by the parse tests.
var mockNow = time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)

func parseAt(text, pattern string, opts ...datefmt.ParseOption) datefmt.Time {
	return datefmt.Parse(text, pattern, append([]datefmt.ParseOption{datefmt.WithNow(mockNow)}, opts...)...)
}

func TestParse_FullFormat(t *testing.T) {
	result := parseAt("2023-12-25 15:30:45", "YYYY-MM-DD HH:mm:ss")
	require.True(t, result.Valid())

	got := result.Time()
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, time.December, got.Month())
	assert.Equal(t, 25, got.Day())
	assert.Equal(t, 15, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, 45, got.Second())
}

func TestParse_MonthAbbreviation(t *testing.T) {
	for _, text := range []string{"25-Dec-2023", "25-dec-2023", "25-DEC-2023"} {
		t.Run(text, func(t *testing.T) {
			result := parseAt(text, "DD-MMM-YYYY")
			require.True(t, result.Valid())
			assert.Equal(t, time.December, result.Time().Month())
			assert.Equal(t, 2023, result.Time().Year())
			assert.Equal(t, 25, result.Time().Day())
		})
	}
}

func TestParse_UnknownMonthAbbreviation(t *testing.T) {
	t.Run("falls back to current month by default", func(t *testing.T) {
		result := parseAt("25-Xyz-2023", "DD-MMM-YYYY")
		require.True(t, result.Valid())
		assert.Equal(t, time.May, result.Time().Month())
	})

	t.Run("invalid when fallback is disabled", func(t *testing.T) {
		result := parseAt("25-Xyz-2023", "DD-MMM-YYYY", datefmt.WithFallbackToCurrentMonth(false))
		assert.False(t, result.Valid())
	})

	t.Run("known month unaffected by policy", func(t *testing.T) {
		result := parseAt("25-Dec-2023", "DD-MMM-YYYY", datefmt.WithFallbackToCurrentMonth(false))
		require.True(t, result.Valid())
		assert.Equal(t, time.December, result.Time().Month())
	})
}

func TestParse_TwoDigitYear(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"23-01-01", 2023},
		{"24-01-01", 2024},
		{"25-01-01", 1925},
		{"00-01-01", 2000},
		{"99-01-01", 1999},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			result := parseAt(tt.text, "YY-MM-DD")
			require.True(t, result.Valid())
			assert.Equal(t, tt.want, result.Time().Year())
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Run("time of day defaults to midnight", func(t *testing.T) {
		result := parseAt("2023-01-01", "YYYY-MM-DD")
		require.True(t, result.Valid())
		assert.Equal(t, 0, result.Time().Hour())
		assert.Equal(t, 0, result.Time().Minute())
		assert.Equal(t, 0, result.Time().Second())
	})

	t.Run("year defaults to current year", func(t *testing.T) {
		result := parseAt("12-31", "MM-DD")
		require.True(t, result.Valid())
		assert.Equal(t, 2024, result.Time().Year())
	})

	t.Run("day defaults to current day", func(t *testing.T) {
		result := parseAt("2023-07", "YYYY-MM")
		require.True(t, result.Valid())
		assert.Equal(t, 20, result.Time().Day())
	})

	t.Run("month defaults to current month", func(t *testing.T) {
		result := parseAt("2023 13:00", "YYYY HH:mm")
		require.True(t, result.Valid())
		assert.Equal(t, time.May, result.Time().Month())
		assert.Equal(t, 20, result.Time().Day())
	})

	t.Run("empty pattern resolves to today at midnight", func(t *testing.T) {
		result := parseAt("anything", "")
		require.True(t, result.Valid())
		assert.True(t, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC).Equal(result.Time()))
	})
}

func TestParse_UnpaddedFields(t *testing.T) {
	result := parseAt("7/4/2023 9:05", "M/D/YYYY HH:mm")
	// HH requires two digits, so "9:05" cannot match.
	assert.False(t, result.Valid())

	result = parseAt("7/4/2023 09:05", "M/D/YYYY HH:mm")
	require.True(t, result.Valid())
	assert.Equal(t, time.July, result.Time().Month())
	assert.Equal(t, 4, result.Time().Day())
	assert.Equal(t, 9, result.Time().Hour())
}

func TestParse_ZoneOffset(t *testing.T) {
	result := parseAt("2023-01-01 +0900", "YYYY-MM-DD Z")
	require.True(t, result.Valid())

	want := time.Date(2022, time.December, 31, 15, 0, 0, 0, time.UTC)
	assert.True(t, want.Equal(result.Time()), "got %s", result.Time().UTC())
	assert.Equal(t, "2022-12-31T15:00:00Z", result.Time().UTC().Format(time.RFC3339))

	_, offset := result.Time().Zone()
	assert.Equal(t, 9*3600, offset)
}

func TestParse_NegativeZoneOffset(t *testing.T) {
	result := parseAt("2023-01-01 10:00 -0530", "YYYY-MM-DD HH:mm Z")
	require.True(t, result.Valid())
	assert.Equal(t, "2023-01-01T15:30:00Z", result.Time().UTC().Format(time.RFC3339))
}

func TestParse_NoMatch(t *testing.T) {
	result := parseAt("invalid-date", "YYYY-MM-DD")
	assert.False(t, result.Valid())
	assert.Equal(t, datefmt.Invalid, result)
	assert.True(t, result.Time().IsZero())
}

func TestParse_LiteralEscaping(t *testing.T) {
	result := parseAt("2023/12/25 [special]", "YYYY/MM/DD [special]")
	require.True(t, result.Valid())
	assert.Equal(t, 2023, result.Time().Year())
	assert.Equal(t, time.December, result.Time().Month())
	assert.Equal(t, 25, result.Time().Day())

	// "." must be literal, not "any character".
	assert.False(t, parseAt("2023x12x25", "YYYY.MM.DD").Valid())
	assert.True(t, parseAt("2023.12.25", "YYYY.MM.DD").Valid())

	// Other regexp metacharacters.
	assert.True(t, parseAt("(2023)+{12}|25^$*?", "(YYYY)+{MM}|DD^$*?").Valid())
}

func TestParse_Anchoring(t *testing.T) {
	text := "INFO 2023-12-25 15:30:45 started"

	t.Run("unanchored finds match inside text", func(t *testing.T) {
		result := parseAt(text, "YYYY-MM-DD HH:mm:ss")
		require.True(t, result.Valid())
		assert.Equal(t, 15, result.Time().Hour())
	})

	t.Run("anchored rejects surrounding text", func(t *testing.T) {
		result := parseAt(text, "YYYY-MM-DD HH:mm:ss", datefmt.WithAnchored(true))
		assert.False(t, result.Valid())
	})

	t.Run("anchored accepts exact text", func(t *testing.T) {
		result := parseAt("2023-12-25 15:30:45", "YYYY-MM-DD HH:mm:ss", datefmt.WithAnchored(true))
		assert.True(t, result.Valid())
	})
}

func TestParse_OutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
	}{
		{"month 13", "2023-13-01", "YYYY-MM-DD"},
		{"month 0", "2023-00-01", "YYYY-MM-DD"},
		{"day 32", "2023-01-32", "YYYY-MM-DD"},
		{"day 0", "2023-01-00", "YYYY-MM-DD"},
		{"february 30", "2023-02-30", "YYYY-MM-DD"},
		{"february 29 in common year", "2023-02-29", "YYYY-MM-DD"},
		{"hour 24", "2023-01-01 24:00:00", "YYYY-MM-DD HH:mm:ss"},
		{"minute 60", "2023-01-01 10:60:00", "YYYY-MM-DD HH:mm:ss"},
		{"second 60", "2023-01-01 10:00:60", "YYYY-MM-DD HH:mm:ss"},
		{"zone hour 24", "2023-01-01 +2400", "YYYY-MM-DD Z"},
		{"zone minute 60", "2023-01-01 +0160", "YYYY-MM-DD Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, parseAt(tt.text, tt.pattern).Valid())
		})
	}

	assert.True(t, parseAt("2024-02-29", "YYYY-MM-DD").Valid(), "leap day")
}

func TestParse_RepeatedDirectiveLastWins(t *testing.T) {
	result := parseAt("2023 2021", "YYYY YYYY")
	require.True(t, result.Valid())
	assert.Equal(t, 2021, result.Time().Year())
}

func TestParse_RoundTrip(t *testing.T) {
	const pattern = "YYYY-MM-DD HH:mm:ss"
	times := []time.Time{
		time.Date(2023, time.December, 25, 15, 30, 45, 0, time.UTC),
		time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(123, time.February, 3, 4, 5, 6, 0, time.UTC),
		time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC),
	}

	for _, want := range times {
		t.Run(want.Format(time.RFC3339), func(t *testing.T) {
			text := datefmt.Format(want, pattern)
			result := parseAt(text, pattern, datefmt.WithLocation(time.UTC))
			require.True(t, result.Valid())
			assert.True(t, want.Equal(result.Time()), "got %s, want %s", result.Time(), want)
		})
	}
}

func TestParse_Location(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)

	t.Run("naive result uses now's location", func(t *testing.T) {
		result := datefmt.Parse("2023-01-01 09:00", "YYYY-MM-DD HH:mm", datefmt.WithNow(mockNow.In(tokyo)))
		require.True(t, result.Valid())
		assert.Equal(t, "2023-01-01T00:00:00Z", result.Time().UTC().Format(time.RFC3339))
	})

	t.Run("WithLocation overrides", func(t *testing.T) {
		result := parseAt("2023-01-01 09:00", "YYYY-MM-DD HH:mm", datefmt.WithLocation(tokyo))
		require.True(t, result.Valid())
		assert.Equal(t, tokyo, result.Time().Location())
	})

	t.Run("defaults read today in the parse location", func(t *testing.T) {
		// 2024-05-20 22:00 UTC is already 2024-05-21 in Tokyo.
		now := time.Date(2024, time.May, 20, 22, 0, 0, 0, time.UTC)
		result := datefmt.Parse("08:00", "HH:mm", datefmt.WithNow(now), datefmt.WithLocation(tokyo))
		require.True(t, result.Valid())
		assert.Equal(t, 21, result.Time().Day())
	})

	t.Run("explicit zone wins over location", func(t *testing.T) {
		result := parseAt("2023-01-01 00:00 +0000", "YYYY-MM-DD HH:mm Z", datefmt.WithLocation(tokyo))
		require.True(t, result.Valid())
		_, offset := result.Time().Zone()
		assert.Equal(t, 0, offset)
	})
}

func TestParse_ClockReadOnce(t *testing.T) {
	calls := 0
	clock := func() time.Time {
		calls++
		return mockNow
	}

	result := datefmt.Parse("13:00", "HH:mm", datefmt.WithClock(clock))
	require.True(t, result.Valid())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2024, result.Time().Year())
}

func TestParse_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	parseAt("invalid-date", "YYYY-MM-DD", datefmt.WithLogger(logger))
	assert.Contains(t, buf.String(), "reason=no_match")

	buf.Reset()
	parseAt("2023-13-01", "YYYY-MM-DD", datefmt.WithLogger(logger))
	assert.Contains(t, buf.String(), "reason=out_of_range")

	buf.Reset()
	parseAt("01-Xyz-2023", "DD-MMM-YYYY", datefmt.WithLogger(logger), datefmt.WithFallbackToCurrentMonth(false))
	assert.Contains(t, buf.String(), "reason=unknown_month")

	buf.Reset()
	parseAt("2023-12-01", "YYYY-MM-DD", datefmt.WithLogger(logger))
	assert.Empty(t, buf.String())
}

func TestParse_NilOptions(t *testing.T) {
	result := datefmt.Parse("2023-12-25", "YYYY-MM-DD", nil, datefmt.WithClock(nil), datefmt.WithLogger(nil))
	assert.True(t, result.Valid())
}

func TestCompile(t *testing.T) {
	layout := datefmt.Compile("YYYY/MM/DD [x]")
	assert.Equal(t, "YYYY/MM/DD [x]", layout.Pattern())
	assert.Equal(t, `(\d{4})/(\d{2})/(\d{2}) \[x\]`, layout.String())
	assert.Equal(t, []string{"YYYY", "MM", "DD"}, layout.Directives())

	result := layout.Parse("2023/12/25 [x]", datefmt.WithNow(mockNow))
	require.True(t, result.Valid())
	assert.Equal(t, 25, result.Time().Day())
}

func TestCompile_DirectivesIsCopy(t *testing.T) {
	layout := datefmt.Compile("YYYY")
	d := layout.Directives()
	d[0] = "changed"
	assert.Equal(t, []string{"YYYY"}, layout.Directives())
}

func TestTime_String(t *testing.T) {
	assert.Equal(t, "invalid time", datefmt.Invalid.String())
	assert.Equal(t, "2023-12-25T15:30:45Z", parseAt("2023-12-25 15:30:45", "YYYY-MM-DD HH:mm:ss").String())
}

func TestTime_MarshalJSON(t *testing.T) {
	type record struct {
		Time datefmt.Time `json:"time"`
	}

	data, err := json.Marshal(record{Time: datefmt.Invalid})
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":null}`, string(data))

	data, err = json.Marshal(record{Time: parseAt("2023-12-25 15:30:45", "YYYY-MM-DD HH:mm:ss")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":"2023-12-25T15:30:45Z"}`, string(data))
}

func TestTime_MarshalJSON_YearOutsideRFC3339(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"negative year", time.Date(-1, time.January, 1, 0, 0, 0, 0, time.UTC), `"-0001-01-01T00:00:00Z"`},
		{"five digit year", time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC), `"10000-01-01T00:00:00Z"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := datefmt.From(tt.in).MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestParse_InvalidUTF8Pattern(t *testing.T) {
	var result datefmt.Time
	require.NotPanics(t, func() {
		result = datefmt.Parse("2023 \xff", "YYYY \xff", datefmt.WithNow(mockNow))
	})
	require.True(t, result.Valid())
	assert.Equal(t, 2023, result.Time().Year())

	layout := datefmt.Compile("YYYY\xfe\xff[MM]")
	assert.Equal(t, `(\d{4})\x{FFFD}\x{FFFD}\[(\d{2})\]`, layout.String())
	assert.True(t, layout.Parse("2023\xfe\xff[12]", datefmt.WithNow(mockNow)).Valid())
	assert.False(t, layout.Parse("2023[12]", datefmt.WithNow(mockNow)).Valid())
}

func TestParse_TwoDigitYearBeforeYear100(t *testing.T) {
	now := time.Date(50, time.June, 1, 0, 0, 0, 0, time.UTC)

	result := datefmt.Parse("99-01-01", "YY-MM-DD", datefmt.WithNow(now))
	assert.False(t, result.Valid(), "pivot to a negative year must be rejected")

	result = datefmt.Parse("49-01-01", "YY-MM-DD", datefmt.WithNow(now))
	require.True(t, result.Valid())
	assert.Equal(t, 49, result.Time().Year())
}
