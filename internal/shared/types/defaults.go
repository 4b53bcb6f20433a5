package types

// Default values for the CLI surface, shared by the flag definitions and the
// config-file merge.
const (
	DefaultThreshold     = 70
	DefaultPenalty       = 20
	DefaultOutput        = "grades.csv"
	DefaultOutputSummary = "grades_by_day.csv"
)
