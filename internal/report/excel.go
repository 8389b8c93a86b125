package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"resume-screener/internal/resume"
)

const (
	resultsSheet = "Parsed Resumes"
	errorsSheet  = "Errors"

	defaultRowHeight = 30
)

var columns = []struct {
	header string
	width  float64
}{
	{"File Name", 30},
	{"AI Score", 15},
	{"Full Name", 25},
	{"Email", 35},
	{"Phone", 15},
	{"Post Applied For", 25},
	{"Total Experience", 20},
	{"Education", 50},
	{"Experience", 100},
}

// NewWorkbook builds the export workbook: one sheet of parsed results plus,
// when any document failed, an Errors sheet.
func NewWorkbook(records []resume.Record, procErrs []resume.ProcessingError) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return nil, fmt.Errorf("rename results sheet: %w", err)
	}

	if err := writeResults(f, records); err != nil {
		return nil, err
	}

	if len(procErrs) > 0 {
		if err := writeErrors(f, procErrs); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// WriteFile renders the workbook and saves it to path.
func WriteFile(path string, records []resume.Record, procErrs []resume.ProcessingError) error {
	f, err := NewWorkbook(records, procErrs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeResults(f *excelize.File, records []resume.Record) error {
	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = column.header

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(resultsSheet, name, name, column.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Font:      &excelize.Font{Family: "Arial", Size: 11},
	})
	if err != nil {
		return fmt.Errorf("create wrap style: %w", err)
	}

	for i, row := range BuildRows(records) {
		rowNum := i + 2
		cells := []any{
			row.FileName,
			row.AIScore,
			row.FullName,
			row.Email,
			row.Phone,
			row.PostAppliedFor,
			row.TotalExperience,
			row.Education,
			row.Experience,
		}

		cell := fmt.Sprintf("A%d", rowNum)
		if err := f.SetSheetRow(resultsSheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", rowNum, err)
		}

		// Multi-line cells need wrapping to stay readable.
		for _, column := range []string{"H", "I"} {
			ref := fmt.Sprintf("%s%d", column, rowNum)
			if err := f.SetCellStyle(resultsSheet, ref, ref, wrapStyle); err != nil {
				return fmt.Errorf("style cell %s: %w", ref, err)
			}
		}

		if err := f.SetRowHeight(resultsSheet, rowNum, defaultRowHeight); err != nil {
			return fmt.Errorf("set row height: %w", err)
		}
	}

	if err := f.SetRowHeight(resultsSheet, 1, defaultRowHeight); err != nil {
		return fmt.Errorf("set header height: %w", err)
	}

	return nil
}

func writeErrors(f *excelize.File, procErrs []resume.ProcessingError) error {
	if _, err := f.NewSheet(errorsSheet); err != nil {
		return fmt.Errorf("create errors sheet: %w", err)
	}

	header := []any{"File Name", "Error"}
	if err := f.SetSheetRow(errorsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write errors header: %w", err)
	}

	for i, procErr := range procErrs {
		cells := []any{procErr.FileName, procErr.Message}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(errorsSheet, cell, &cells); err != nil {
			return fmt.Errorf("write error row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(errorsSheet, "A", "A", 30); err != nil {
		return fmt.Errorf("set errors column width: %w", err)
	}
	if err := f.SetColWidth(errorsSheet, "B", "B", 80); err != nil {
		return fmt.Errorf("set errors column width: %w", err)
	}

	return nil
}
