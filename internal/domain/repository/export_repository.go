package repository

import (
	"github.com/edutools/zybook-grader-go/internal/domain/entity"
)

// ExportRepository defines the interface for writing pipeline outputs.
type ExportRepository interface {
	// Primary outputs, written to exact paths chosen on the command line.
	WriteGradesCSV(report entity.GradeReport, path string) (string, error)
	WriteSummaryCSV(summary entity.SummaryTable, path string) (string, error)

	// Optional named report copies, timestamped into an output directory.
	ExportGradesToCSV(report entity.GradeReport, filename, outputDir string) (string, error)
	ExportGradesToJSON(report entity.GradeReport, filename, outputDir string) (string, error)
	ExportGradesToPDF(report entity.GradeReport, filename, outputDir string) (string, error)
	ExportGradesToXLSX(report entity.GradeReport, filename, outputDir string) (string, error)
}
