package repository

import (
	"github.com/edutools/zybook-grader-go/internal/domain/entity"
)

// ReportRepository defines the interface for loading platform CSV exports.
type ReportRepository interface {
	// LoadReports parses one or more dated snapshot files into a single
	// table, one row per (student, day).
	LoadReports(paths []string) (entity.ReportTable, error)

	// LoadAssignments parses the due-date roster.
	LoadAssignments(path string) (entity.AssignmentTable, error)
}
