// Package xlsx implements the ReportRenderer port using excelize.
// It produces the full-table report and the side-by-side added/deleted
// changes report.
package xlsx
