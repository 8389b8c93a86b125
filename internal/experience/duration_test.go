package experience

import (
	"testing"
	"time"

	"resume-screener/internal/resume"
)

func fixedNow(year int, month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	}
}

func entries(durations ...string) []resume.ExperienceEntry {
	out := make([]resume.ExperienceEntry, 0, len(durations))
	for _, d := range durations {
		out = append(out, resume.ExperienceEntry{Duration: d})
	}
	return out
}

func TestTotalEmptyAndMissingDurations(t *testing.T) {
	t.Parallel()

	calc := NewCalculator()

	for _, input := range [][]resume.ExperienceEntry{
		nil,
		{},
		entries("", "  ", ""),
	} {
		got := calc.Total(input)
		if got.Years != 0 || got.Months != 0 || got.Formatted != "0 years 0 months" {
			t.Fatalf("expected zero experience, got %+v", got)
		}
	}
}

func TestTotalSumsYearsAndMonths(t *testing.T) {
	t.Parallel()

	calc := NewCalculator()

	tests := []struct {
		name      string
		durations []string
		years     int
		months    int
		formatted string
	}{
		{
			name:      "combined year and month in one string",
			durations: []string{"2 years 6 months"},
			years:     2, months: 6,
			formatted: "2 years 6 months",
		},
		{
			name:      "abbreviations",
			durations: []string{"3 yrs", "6 mo"},
			years:     3, months: 6,
			formatted: "3 years 6 months",
		},
		{
			name:      "singular boundaries",
			durations: []string{"1 year 1 month"},
			years:     1, months: 1,
			formatted: "1 year 1 month",
		},
		{
			name:      "plural months singular year",
			durations: []string{"1 year 2 months"},
			years:     1, months: 2,
			formatted: "1 year 2 months",
		},
		{
			name:      "singular month plural years",
			durations: []string{"2 years 1 month"},
			years:     2, months: 1,
			formatted: "2 years 1 month",
		},
		{
			name:      "overflow into years",
			durations: []string{"10 months", "5 months"},
			years:     1, months: 3,
			formatted: "1 year 3 months",
		},
		{
			name:      "skips empty entries between valid ones",
			durations: []string{"1 year", "", "6 months"},
			years:     1, months: 6,
			formatted: "1 year 6 months",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Total(entries(tt.durations...))
			if got.Years != tt.years || got.Months != tt.months {
				t.Fatalf("expected %dy %dm, got %dy %dm", tt.years, tt.months, got.Years, got.Months)
			}
			if got.Formatted != tt.formatted {
				t.Fatalf("expected %q, got %q", tt.formatted, got.Formatted)
			}
		})
	}
}

func TestTotalPresentAddsFromStartYear(t *testing.T) {
	t.Parallel()

	calc := &Calculator{Now: fixedNow(2024, time.April)}

	got := calc.Total(entries("Present, started 2019"))
	want := (2024-2019)*12 + 4
	if total := got.Years*12 + got.Months; total != want {
		t.Fatalf("expected %d months, got %d", want, total)
	}
}

func TestTotalPresentIsAdditiveWithExplicitPatterns(t *testing.T) {
	t.Parallel()

	calc := &Calculator{Now: fixedNow(2024, time.April)}

	// Both the explicit year match and the present path contribute.
	got := calc.Total(entries("2 years, 2019 - Present"))
	want := 24 + (2024-2019)*12 + 4
	if total := got.Years*12 + got.Months; total != want {
		t.Fatalf("expected %d months, got %d", want, total)
	}
}

func TestTotalCurrentTokenBehavesLikePresent(t *testing.T) {
	t.Parallel()

	calc := &Calculator{Now: fixedNow(2023, time.January)}

	got := calc.Total(entries("2021 - current"))
	want := (2023-2021)*12 + 1
	if total := got.Years*12 + got.Months; total != want {
		t.Fatalf("expected %d months, got %d", want, total)
	}
}

func TestTotalPresentWithoutYearContributesNothing(t *testing.T) {
	t.Parallel()

	calc := &Calculator{Now: fixedNow(2024, time.April)}

	got := calc.Total(entries("present"))
	if got.Years != 0 || got.Months != 0 {
		t.Fatalf("expected zero experience, got %+v", got)
	}
}
