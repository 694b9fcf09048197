package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		// single tokens
		{"YYYY", "2006"},
		{"YY", "06"},
		{"MMMM", "January"},
		{"MMM", "Jan"},
		{"MM", "01"},
		{"M", "1"},
		{"DD", "02"},
		{"D", "2"},
		{"HH", "15"},
		{"hh", "03"},
		{"mm", "04"},
		{"ss", "05"},
		{"A", "PM"},

		// month and minute differ only by case
		{"MM:mm", "01:04"},

		// formats the converter uses
		{DefaultTimestampFormat, "02/01/2006 15:04:05"},
		{FileStampFormat, "20060102_150405"},
		{"MM/DD/YYYY hh:mm:ss A", "01/02/2006 03:04:05 PM"},
		{"MMMM D, YYYY HH:mm", "January 2, 2006 15:04"},

		// literals and brackets
		{"(YYYY-MM-DD)", "(2006-01-02)"},
		{"---", "---"},
		{"Sent: HH:mm", "Sent: 15:04"},
		{"[Day] D", "Day 2"},
		{"[YYYY]-MM", "YYYY-01"},
		{"YYYY[]MM", "200601"},
		{"[a[b]c", "a[bc"},
		{"[at] HH", "at 15"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseDateFormat_Rejects(t *testing.T) {
	t.Parallel()

	for _, format := range []string{
		"",
		"[sent YYYY",
		strings.Repeat("D", MaxDateFormatLength+1),
	} {
		if _, err := ParseDateFormat(format); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDateFormat(%.20q...) error = %v, want %v", format, err, ErrInvalidDateFormat)
		}
	}

	atLimit := strings.Repeat("-", MaxDateFormatLength)
	if got, err := ParseDateFormat(atLimit); err != nil || got != atLimit {
		t.Errorf("ParseDateFormat(at limit) = (%q, %v), want unchanged", got, err)
	}
}

func TestResolveLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{
			name:   "empty uses default",
			format: "",
			want:   "02/01/2006 15:04:05",
		},
		{
			name:   "european preset",
			format: "european",
			want:   "02/01/2006 15:04:05",
		},
		{
			name:   "preset is case insensitive",
			format: "ISO",
			want:   "2006-01-02 15:04:05",
		},
		{
			name:   "us preset",
			format: "us",
			want:   "01/02/2006 03:04:05 PM",
		},
		{
			name:   "custom tokens",
			format: "YYYY/MM/DD",
			want:   "2006/01/02",
		},
		{
			name:    "unclosed bracket",
			format:  "[at HH",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveLayout(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveLayout(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveLayout(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ResolveLayout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 15, 10, 30, 5, 0, time.UTC)

	got, err := FormatTime(fixed, FileStampFormat)
	if err != nil {
		t.Fatalf("FormatTime() unexpected error: %v", err)
	}
	if got != "20240315_103005" {
		t.Errorf("FormatTime() = %q, want %q", got, "20240315_103005")
	}

	if _, err := FormatTime(fixed, "[oops"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("FormatTime() error = %v, want %v", err, ErrInvalidDateFormat)
	}
}

func TestFormatEpochMillis(t *testing.T) {
	t.Parallel()

	layout, err := ParseDateFormat(DefaultTimestampFormat)
	if err != nil {
		t.Fatalf("ParseDateFormat() unexpected error: %v", err)
	}
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name string
		in   EpochMillis
		loc  *time.Location
		want string
	}{
		{
			name: "utc",
			in:   Millis(1771702156956),
			loc:  time.UTC,
			want: "21/02/2026 19:29:16",
		},
		{
			name: "local zone applied",
			in:   Millis(1771702156956),
			loc:  rome,
			want: "21/02/2026 20:29:16",
		},
		{
			name: "epoch zero",
			in:   Millis(0),
			loc:  time.UTC,
			want: "01/01/1970 00:00:00",
		},
		{
			name: "non-numeric echoes literal",
			in:   Literal("yesterday"),
			loc:  time.UTC,
			want: "yesterday",
		},
		{
			name: "out of range echoes literal",
			in:   EpochMillis{Millis: 1 << 62, Numeric: true, Literal: "4611686018427387904"},
			loc:  time.UTC,
			want: "4611686018427387904",
		},
		{
			name: "negative out of range echoes literal",
			in:   EpochMillis{Millis: -1 << 62, Numeric: true, Literal: "-4611686018427387904"},
			loc:  time.UTC,
			want: "-4611686018427387904",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FormatEpochMillis(tt.in, layout, tt.loc)
			if got != tt.want {
				t.Errorf("FormatEpochMillis(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEpochMillis_NilLocationIsLocal(t *testing.T) {
	t.Parallel()

	got, ok := Millis(0).Time(nil)
	if !ok {
		t.Fatal("Time(nil) reported unusable value")
	}
	if got.Location() != time.Local {
		t.Errorf("Time(nil) location = %v, want Local", got.Location())
	}
}
