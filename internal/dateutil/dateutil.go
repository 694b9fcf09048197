// Package dateutil converts user-friendly date tokens to Go layouts and
// formats epoch-millisecond timestamps.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultTimestampFormat renders message and conversation timestamps.
const DefaultTimestampFormat = "DD/MM/YYYY HH:mm:ss"

// FileStampFormat is the compact stamp used in generated file names.
const FileStampFormat = "YYYYMMDD_HHmmss"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching. Tokens are case-sensitive:
// MM is the month, mm the minute.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
	{"A", "PM"},
}

// DatePresets provides named shortcuts for common timestamp formats.
var DatePresets = map[string]string{
	"european": "DD/MM/YYYY HH:mm:ss",
	"iso":      "YYYY-MM-DD HH:mm:ss",
	"us":       "MM/DD/YYYY hh:mm:ss A",
	"long":     "MMMM D, YYYY HH:mm",
}

// Year bounds for timestamps that can be rendered.
const (
	minYear = 1
	maxYear = 9999
)

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, hh, mm, ss, A.
// Use brackets to escape literal text: [at] preserves "at" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// ResolveLayout accepts a preset name (case-insensitive) or a token format
// and returns the Go layout. An empty value selects DefaultTimestampFormat.
func ResolveLayout(format string) (string, error) {
	if format == "" {
		format = DefaultTimestampFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}

// FormatTime formats t with a user-friendly token format.
func FormatTime(t time.Time, format string) (string, error) {
	layout, err := ResolveLayout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// EpochMillis is a raw timestamp field. Numeric reports whether Millis holds
// a usable value; Literal is the value as it appeared in the input and is
// echoed back whenever the timestamp cannot be rendered.
type EpochMillis struct {
	Millis  int64
	Numeric bool
	Literal string
}

// Millis returns a numeric EpochMillis.
func Millis(ms int64) EpochMillis {
	return EpochMillis{Millis: ms, Numeric: true, Literal: strconv.FormatInt(ms, 10)}
}

// Literal returns an EpochMillis that always renders as s.
func Literal(s string) EpochMillis {
	return EpochMillis{Literal: s}
}

// Time converts the timestamp to a time in loc. It returns false for
// non-numeric values and for instants outside years 1 through 9999.
func (e EpochMillis) Time(loc *time.Location) (time.Time, bool) {
	if !e.Numeric {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t := time.UnixMilli(e.Millis).In(loc)
	if y := t.Year(); y < minYear || y > maxYear {
		return time.Time{}, false
	}
	return t, true
}

// FormatEpochMillis renders e with layout in loc, or returns e.Literal when
// the value cannot be represented as a calendar time.
func FormatEpochMillis(e EpochMillis, layout string, loc *time.Location) string {
	t, ok := e.Time(loc)
	if !ok {
		return e.Literal
	}
	return t.Format(layout)
}
