package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/exwatch-cli/internal/core/domain"
	"github.com/custodia-labs/exwatch-cli/internal/core/ports/driven"
)

// columnHeaders is the fixed column set of every report.
var columnHeaders = []string{"id", "subject", "decision", "effective_date"}

const (
	fullSheetName    = "Scraped data"
	changesSheetName = "Changes"

	// minColumnWidth keeps narrow columns readable; padding leaves a
	// little air around the longest cell.
	minColumnWidth = 10
	columnPadding  = 2
)

// Ensure Renderer implements the interface.
var _ driven.ReportRenderer = (*Renderer)(nil)

// Renderer writes spreadsheet reports.
type Renderer struct{}

// NewRenderer creates an xlsx report renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// styleSet holds the cell styles shared by both report kinds.
type styleSet struct {
	sectionHeader int
	subHeader     int
	data          int
}

func newStyles(f *excelize.File) (styleSet, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	sectionHeader, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		Border:    border,
	})
	if err != nil {
		return styleSet{}, err
	}

	subHeader, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E7E6E6"}, Pattern: 1},
		Border:    border,
	})
	if err != nil {
		return styleSet{}, err
	}

	data, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Border:    border,
	})
	if err != nil {
		return styleSet{}, err
	}

	return styleSet{sectionHeader: sectionHeader, subHeader: subHeader, data: data}, nil
}

// RenderFull writes the whole Generation to a single sheet, one record
// per row beneath a header row.
func (r *Renderer) RenderFull(gen domain.Generation, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", fullSheetName); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("define styles: %w", err)
	}

	for col, header := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(fullSheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(fullSheetName, cell, cell, styles.subHeader); err != nil {
			return err
		}
	}

	for rowIdx, rec := range gen {
		for col, value := range recordValues(rec) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(fullSheetName, cell, value); err != nil {
				return err
			}
			if err := f.SetCellStyle(fullSheetName, cell, cell, styles.data); err != nil {
				return err
			}
		}
	}

	if err := setSectionWidths(f, fullSheetName, gen, 1); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// RenderChanges writes the added and deleted sections side by side on
// one sheet, separated by a blank column.
func (r *Renderer) RenderChanges(cs *domain.ChangeSet, path string) error {
	if cs == nil {
		return fmt.Errorf("nil change set")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", changesSheetName); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("define styles: %w", err)
	}

	addedStart := 1
	separator := addedStart + len(columnHeaders)
	deletedStart := separator + 1

	if err := writeSection(f, styles, "Added items", cs.Added, addedStart); err != nil {
		return err
	}

	sepName, err := excelize.ColumnNumberToName(separator)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(changesSheetName, sepName, sepName, 3); err != nil {
		return err
	}

	if err := writeSection(f, styles, "Deleted items", cs.Deleted, deletedStart); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// writeSection emits one section: merged title on row 1, sub-headers on
// row 2 and data from row 3.
func writeSection(f *excelize.File, styles styleSet, title string, records domain.Generation, startCol int) error {
	first, err := excelize.CoordinatesToCellName(startCol, 1)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(startCol+len(columnHeaders)-1, 1)
	if err != nil {
		return err
	}

	if err := f.MergeCell(changesSheetName, first, last); err != nil {
		return err
	}
	if err := f.SetCellValue(changesSheetName, first, title); err != nil {
		return err
	}
	if err := f.SetCellStyle(changesSheetName, first, last, styles.sectionHeader); err != nil {
		return err
	}

	for col, header := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(startCol+col, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(changesSheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(changesSheetName, cell, cell, styles.subHeader); err != nil {
			return err
		}
	}

	for rowIdx, rec := range records {
		for col, value := range recordValues(rec) {
			cell, err := excelize.CoordinatesToCellName(startCol+col, rowIdx+3)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(changesSheetName, cell, value); err != nil {
				return err
			}
			if err := f.SetCellStyle(changesSheetName, cell, cell, styles.data); err != nil {
				return err
			}
		}
	}

	return setSectionWidths(f, changesSheetName, records, startCol)
}

// setSectionWidths sizes each column of a section to its longest
// content, clamped to a readable minimum.
func setSectionWidths(f *excelize.File, sheet string, records domain.Generation, startCol int) error {
	for col, header := range columnHeaders {
		width := len(header) + 5
		if len(records) > 0 {
			longest := len(header)
			for _, rec := range records {
				if l := len(recordValues(rec)[col]); l > longest {
					longest = l
				}
			}
			if longest < minColumnWidth {
				longest = minColumnWidth
			}
			width = longest + columnPadding
		}

		name, err := excelize.ColumnNumberToName(startCol + col)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

func recordValues(rec domain.Record) []string {
	return []string{rec.ID, rec.Subject, rec.Decision, rec.EffectiveDate}
}
