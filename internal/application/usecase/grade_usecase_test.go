package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configadapter "github.com/edutools/zybook-grader-go/internal/adapter/driven/config"
	exportadapter "github.com/edutools/zybook-grader-go/internal/adapter/driven/export"
	reportadapter "github.com/edutools/zybook-grader-go/internal/adapter/driven/report"
	"github.com/edutools/zybook-grader-go/internal/shared/types"
)

// quietConsole atende ConsoleInterface sem escrever nada, para manter a saída
// dos testes limpa.
type quietConsole struct{}

func (quietConsole) Print(a ...interface{})                       {}
func (quietConsole) Printf(format string, a ...interface{})       {}
func (quietConsole) Println(a ...interface{})                     {}
func (quietConsole) LogInfo(format string, a ...interface{})      {}
func (quietConsole) LogWarning(format string, a ...interface{})   {}
func (quietConsole) LogError(format string, a ...interface{})     {}
func (quietConsole) LogSuccess(format string, a ...interface{})   {}
func (quietConsole) Status(message string) types.StatusHandle     { return quietStatus{} }
func (quietConsole) ProgressWithTotal(int) types.ProgressHandle   { return quietProgress{} }
func (quietConsole) CreateTable() types.TableInterface            { return &quietTable{} }
func (quietConsole) DisplayLatenessBars([]types.LatenessBucket)   {}

type quietStatus struct{}

func (quietStatus) Update(message string) {}
func (quietStatus) Stop()                 {}

type quietProgress struct{}

func (quietProgress) Increment() {}
func (quietProgress) Stop()      {}

type quietTable struct{}

func (*quietTable) AddColumn(name string, options ...interface{}) {}
func (*quietTable) AddRow(cells ...interface{})                   {}
func (*quietTable) Render() string                                { return "" }

func newTestUseCase() *GradeUseCase {
	return NewGradeUseCase(
		reportadapter.NewReportRepository(),
		exportadapter.NewExportRepository(),
		configadapter.NewConfigRepository(),
		quietConsole{},
	)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

const snapshotHeader = "Last name,First name,Primary email,School email,Student ID,Lab 1 (40)\n"
const aliceRow = "Silva,Ana,ana@example.edu,ana@school.edu,1001,%s\n"

func defaultArgs(dir string, reports ...string) *types.CLIArgs {
	return &types.CLIArgs{
		ReportPaths:   reports,
		Threshold:     types.DefaultThreshold,
		Penalty:       types.DefaultPenalty,
		Output:        filepath.Join(dir, "grades.csv"),
		OutputSummary: filepath.Join(dir, "grades_by_day.csv"),
	}
}

func TestRunGraderMultiReportWithDueDates(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "CS101_report_2024-03-10_0900.csv",
		snapshotHeader+fmt.Sprintf(aliceRow, "50"))
	second := writeFile(t, dir, "CS101_report_2024-03-12_0900.csv",
		snapshotHeader+fmt.Sprintf(aliceRow, "100"))
	dueDates := writeFile(t, dir, "due_dates.csv",
		"Last name,First name,Primary email,School email,Student ID,Lab 1 (40),due_date\n"+
			"Silva,Ana,ana@example.edu,ana@school.edu,1001,100,2024-03-10\n")

	args := defaultArgs(dir, first, second)
	args.DueDatesPath = dueDates

	uc := newTestUseCase()
	require.NoError(t, uc.RunGrader(context.Background(), args))

	// The per-day summary holds raw increments: 20 points on time, 20 points
	// two days late, before any deduction.
	summaryRows := readCSVFile(t, args.OutputSummary)
	require.Len(t, summaryRows, 3)
	assert.Equal(t, []string{
		"last_name", "first_name", "primary_email", "school_email", "student_id",
		"0", "2", "All",
	}, summaryRows[0])
	assert.Equal(t, []string{"Silva", "Ana", "ana@example.edu", "ana@school.edu", "1001", "20", "20", "40"}, summaryRows[1])
	assert.Equal(t, []string{"All", "", "", "", "", "20", "20", "40"}, summaryRows[2])

	// The late increment loses 2 days * 20% of its 20 points, leaving 12.
	// 32/40 = 80% clears the 70% threshold, so the final grade is 100.
	gradeRows := readCSVFile(t, args.Output)
	require.Len(t, gradeRows, 2)
	assert.Equal(t, []string{
		"last_name", "first_name", "primary_email", "school_email", "student_id",
		"lab_1_(40)", "total_(40)", "total", "final", "final_pts",
	}, gradeRows[0])
	assert.Equal(t, []string{
		"Silva", "Ana", "ana@example.edu", "ana@school.edu", "1001",
		"32", "32", "80", "100", "40",
	}, gradeRows[1])
}

func TestRunGraderSingleReportSkipsSummary(t *testing.T) {
	dir := t.TempDir()
	report := writeFile(t, dir, "CS101_report_2024-03-10_0900.csv",
		snapshotHeader+fmt.Sprintf(aliceRow, "50"))

	args := defaultArgs(dir, report)

	uc := newTestUseCase()
	require.NoError(t, uc.RunGrader(context.Background(), args))

	_, err := os.Stat(args.OutputSummary)
	assert.True(t, os.IsNotExist(err))

	// Without a roster no penalty applies; 20/40 = 50% stays below the
	// threshold and passes through unchanged.
	gradeRows := readCSVFile(t, args.Output)
	require.Len(t, gradeRows, 2)
	assert.Equal(t, []string{
		"Silva", "Ana", "ana@example.edu", "ana@school.edu", "1001",
		"20", "20", "50", "50", "20",
	}, gradeRows[1])
}

func TestRunGraderNoThresholdDisablesStep(t *testing.T) {
	dir := t.TempDir()
	report := writeFile(t, dir, "CS101_report_2024-03-10_0900.csv",
		snapshotHeader+fmt.Sprintf(aliceRow, "75"))

	args := defaultArgs(dir, report)
	args.NoThreshold = true

	uc := newTestUseCase()
	require.NoError(t, uc.RunGrader(context.Background(), args))

	// 30/40 = 75% would clear the default 70% threshold, but -N turns the
	// step off.
	gradeRows := readCSVFile(t, args.Output)
	require.Len(t, gradeRows, 2)
	assert.Equal(t, "75", gradeRows[1][8])
	assert.Equal(t, "30", gradeRows[1][9])
}

func TestRunGraderConfigFileLowersThreshold(t *testing.T) {
	dir := t.TempDir()
	report := writeFile(t, dir, "CS101_report_2024-03-10_0900.csv",
		snapshotHeader+fmt.Sprintf(aliceRow, "50"))
	cfg := writeFile(t, dir, "grader.json", `{"full_grade_at": 50}`)

	args := defaultArgs(dir, report)
	args.ConfigFile = cfg

	uc := newTestUseCase()
	require.NoError(t, uc.RunGrader(context.Background(), args))

	// The config file lowers the threshold to 50%, so 20/40 steps up to 100.
	gradeRows := readCSVFile(t, args.Output)
	require.Len(t, gradeRows, 2)
	assert.Equal(t, "100", gradeRows[1][8])
}

func TestRunGraderExportsReportCopies(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "exports")
	report := writeFile(t, dir, "CS101_report_2024-03-10_0900.csv",
		snapshotHeader+fmt.Sprintf(aliceRow, "50"))

	args := defaultArgs(dir, report)
	args.ReportName = "cs101-grades"
	args.ReportType = []string{"csv", "json", "xlsx"}
	args.Dir = outDir

	uc := newTestUseCase()
	require.NoError(t, uc.RunGrader(context.Background(), args))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	exts := make(map[string]bool)
	for _, entry := range entries {
		assert.Contains(t, entry.Name(), "cs101-grades_")
		exts[filepath.Ext(entry.Name())] = true
	}
	assert.True(t, exts[".csv"])
	assert.True(t, exts[".json"])
	assert.True(t, exts[".xlsx"])
}

func TestRunGraderFailsWithoutReports(t *testing.T) {
	uc := newTestUseCase()
	err := uc.RunGrader(context.Background(), &types.CLIArgs{})
	assert.ErrorIs(t, err, types.ErrNoReportFiles)
}
