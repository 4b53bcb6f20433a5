package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile    string
	ReportPaths   []string
	DueDatesPath  string
	Threshold     int
	NoThreshold   bool
	Penalty       int
	Output        string
	OutputSummary string
	ReportName    string
	ReportType    []string
	Dir           string
}
