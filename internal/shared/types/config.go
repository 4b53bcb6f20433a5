package types

// Config represents the application configuration that can be loaded from a
// file. Values act as defaults and are overridden by explicit flags.
type Config struct {
	DueDates      string   `json:"due_dates" yaml:"due_dates" toml:"due_dates"`
	FullGradeAt   int      `json:"full_grade_at" yaml:"full_grade_at" toml:"full_grade_at"`
	NoThreshold   bool     `json:"no_threshold" yaml:"no_threshold" toml:"no_threshold"`
	PenaltyFactor int      `json:"penalty_factor" yaml:"penalty_factor" toml:"penalty_factor"`
	Output        string   `json:"output" yaml:"output" toml:"output"`
	OutputSummary string   `json:"output_summary" yaml:"output_summary" toml:"output_summary"`
	ReportName    string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType    []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir           string   `json:"dir" yaml:"dir" toml:"dir"`
}
