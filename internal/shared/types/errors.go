package types

import "errors"

var (
	ErrNoReportFiles          = errors.New("no report files given")
	ErrInvalidReportFilename  = errors.New("not a valid grade file: filename carries no YYYY-MM-DD_HHMM timestamp")
	ErrMissingDueDateColumn   = errors.New("due-date roster has no due_date column")
	ErrMissingIdentityColumns = errors.New("report has none of the student identity columns")
	ErrUnknownReportType      = errors.New("unknown report type (expected csv, json, pdf or xlsx)")
)
