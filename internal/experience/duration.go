// Package experience converts the free-text duration strings found in parsed
// work histories into a normalized month total.
package experience

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"resume-screener/internal/resume"
)

var (
	yearsPattern  = regexp.MustCompile(`(\d+)\s*(?:year|yr|y)`)
	monthsPattern = regexp.MustCompile(`(\d+)\s*(?:month|mo|m)`)
	startPattern  = regexp.MustCompile(`(\d{4})`)
)

// Calculator sums experience durations. Now is injectable so that open-ended
// durations ("2019 - Present") are computable against a fixed point in tests.
type Calculator struct {
	Now func() time.Time
}

func NewCalculator() *Calculator {
	return &Calculator{Now: time.Now}
}

// Total computes the combined experience across all entries. Entries with a
// missing duration are skipped. A duration string may contribute through the
// explicit year pattern, the explicit month pattern, and the present/current
// path at the same time; all matches are summed.
func (c *Calculator) Total(entries []resume.ExperienceEntry) resume.TotalExperience {
	now := time.Now
	if c != nil && c.Now != nil {
		now = c.Now
	}

	totalMonths := 0
	for _, entry := range entries {
		duration := strings.ToLower(strings.TrimSpace(entry.Duration))
		if duration == "" {
			continue
		}

		if m := yearsPattern.FindStringSubmatch(duration); m != nil {
			years, _ := strconv.Atoi(m[1])
			totalMonths += years * 12
		}
		if m := monthsPattern.FindStringSubmatch(duration); m != nil {
			months, _ := strconv.Atoi(m[1])
			totalMonths += months
		}

		if strings.Contains(duration, "present") || strings.Contains(duration, "current") {
			if m := startPattern.FindStringSubmatch(duration); m != nil {
				startYear, _ := strconv.Atoi(m[1])
				current := now()
				totalMonths += (current.Year()-startYear)*12 + int(current.Month())
			}
		}
	}

	years := totalMonths / 12
	months := totalMonths % 12

	return resume.TotalExperience{
		Years:     years,
		Months:    months,
		Formatted: fmt.Sprintf("%d %s %d %s", years, pluralize("year", years), months, pluralize("month", months)),
	}
}

func pluralize(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
