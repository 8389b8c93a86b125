// Package report renders batch results into human-readable rows and exports
// them as an Excel workbook.
package report

import (
	"fmt"
	"strings"

	"resume-screener/internal/resume"
)

const (
	defaultPosition   = "Not Specified"
	defaultExperience = "0 years 0 months"
)

// Row is one spreadsheet line for a processed resume, with multi-line cells
// already rendered.
type Row struct {
	FileName        string
	AIScore         int
	FullName        string
	Email           string
	Phone           string
	PostAppliedFor  string
	TotalExperience string
	Education       string
	Experience      string
}

// BuildRow flattens a record into displayable cells, substituting defaults
// for fields the model could not extract.
func BuildRow(record resume.Record) Row {
	position := strings.TrimSpace(record.PostAppliedFor)
	if position == "" {
		position = defaultPosition
	}

	total := strings.TrimSpace(record.TotalExperience.Formatted)
	if total == "" {
		total = defaultExperience
	}

	return Row{
		FileName:        record.FileName,
		AIScore:         record.AIScore,
		FullName:        record.FullName,
		Email:           record.Email,
		Phone:           record.Phone,
		PostAppliedFor:  position,
		TotalExperience: total,
		Education:       FormatEducation(record.Education),
		Experience:      FormatExperience(record.Experience),
	}
}

// BuildRows converts records to rows, preserving order.
func BuildRows(records []resume.Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, BuildRow(record))
	}
	return rows
}

// FormatEducation renders the highest qualification as a three-line cell.
func FormatEducation(education resume.Education) string {
	if education == (resume.Education{}) {
		return ""
	}

	degree := education.Degree
	if degree == "" {
		degree = "Degree"
	}
	institution := education.Institution
	if institution == "" {
		institution = "N/A"
	}
	year := education.Year
	if year == "" {
		year = "N/A"
	}

	return fmt.Sprintf("%s\nInstitution: %s\nYear: %s", degree, institution, year)
}

// FormatExperience renders the work history as bulleted blocks separated by
// blank lines, one block per job.
func FormatExperience(entries []resume.ExperienceEntry) string {
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		position := entry.Position
		if position == "" {
			position = "Position"
		}
		company := entry.Company
		if company == "" {
			company = "Company"
		}
		duration := entry.Duration
		if duration == "" {
			duration = "N/A"
		}

		var builder strings.Builder
		fmt.Fprintf(&builder, "• %s at %s\n  Duration: %s\n  Responsibilities:", position, company, duration)
		for _, responsibility := range entry.Responsibilities {
			builder.WriteString("\n    • " + responsibility)
		}

		blocks = append(blocks, builder.String())
	}

	return strings.Join(blocks, "\n\n")
}
