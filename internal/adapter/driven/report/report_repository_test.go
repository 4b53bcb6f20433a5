package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutools/zybook-grader-go/internal/shared/types"
)

func writeReport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const snapshotHeader = "Last name,First name,Primary email,School email,Student ID," +
	"Lab 1 (40),Chapter total (90),Points earned (out of 130),Percent grade\n"

func TestLoadReportsConvertsPercentagesToPoints(t *testing.T) {
	path := writeReport(t, "CS101_report_2024-03-01_0930.csv",
		snapshotHeader+
			"Silva,Ana,ana@example.edu,ana@school.edu,1001,50,55,65,50\n"+
			"Costa,Rui,rui@example.edu,rui@school.edu,1002,100,90,117,90\n")

	repo := NewReportRepository()
	table, err := repo.LoadReports([]string{path})
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	// 50% of 40 points is 20; 100% is the full 40.
	assert.Equal(t, 20.0, table.Rows[0].Points["lab_1_(40)"])
	assert.Equal(t, 40.0, table.Rows[1].Points["lab_1_(40)"])
	assert.Equal(t, "Silva", table.Rows[0].Key.LastName)
	assert.Equal(t, "1001", table.Rows[0].Key.StudentID)
}

func TestLoadReportsDropsDerivedColumns(t *testing.T) {
	path := writeReport(t, "CS101_report_2024-03-01_0930.csv",
		snapshotHeader+"Silva,Ana,ana@example.edu,ana@school.edu,1001,50,55,65,50\n")

	repo := NewReportRepository()
	table, err := repo.LoadReports([]string{path})
	require.NoError(t, err)

	assert.Equal(t, []string{"lab_1_(40)"}, table.Schema.PointsColumnNames())
	assert.False(t, table.Schema.HasColumn("chapter_total_(90)"))
	assert.False(t, table.Schema.HasColumn("points_earned_(out_of_130)"))
	assert.False(t, table.Schema.HasColumn("percent_grade"))
	assert.True(t, table.Schema.HasColumn("day"))
}

func TestLoadReportsEmptyCellsBecomeZero(t *testing.T) {
	path := writeReport(t, "CS101_report_2024-03-01_0930.csv",
		snapshotHeader+"Silva,Ana,ana@example.edu,ana@school.edu,1001,,,,\n")

	repo := NewReportRepository()
	table, err := repo.LoadReports([]string{path})
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, 0.0, table.Rows[0].Points["lab_1_(40)"])
}

func TestLoadReportsParsesFilenameTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected time.Time
	}{
		{
			"no timezone suffix reads as UTC",
			"CS101_report_2024-03-18_0930.csv",
			time.Date(2024, 3, 18, 9, 30, 0, 0, time.UTC),
		},
		{
			"known abbreviation shifts to UTC",
			"CS101_report_2024-03-18_0930_PDT.csv",
			time.Date(2024, 3, 18, 16, 30, 0, 0, time.UTC),
		},
		{
			"unknown suffix falls back to UTC",
			"CS101_report_2024-03-18_0930_XYZ.csv",
			time.Date(2024, 3, 18, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeReport(t, tt.filename,
				snapshotHeader+"Silva,Ana,ana@example.edu,ana@school.edu,1001,50,55,65,50\n")

			repo := NewReportRepository()
			table, err := repo.LoadReports([]string{path})
			require.NoError(t, err)

			require.Len(t, table.Rows, 1)
			assert.True(t, tt.expected.Equal(table.Rows[0].Day),
				"expected %v, got %v", tt.expected, table.Rows[0].Day)
		})
	}
}

func TestLoadReportsRejectsFilenameWithoutTimestamp(t *testing.T) {
	path := writeReport(t, "report.csv",
		snapshotHeader+"Silva,Ana,ana@example.edu,ana@school.edu,1001,50,55,65,50\n")

	repo := NewReportRepository()
	_, err := repo.LoadReports([]string{path})
	assert.ErrorIs(t, err, types.ErrInvalidReportFilename)
}

func TestLoadReportsRejectsEmptyPathList(t *testing.T) {
	repo := NewReportRepository()
	_, err := repo.LoadReports(nil)
	assert.ErrorIs(t, err, types.ErrNoReportFiles)
}

func TestLoadReportsCombinesAndSortsByDay(t *testing.T) {
	dir := t.TempDir()
	later := filepath.Join(dir, "CS101_report_2024-03-02_0930.csv")
	earlier := filepath.Join(dir, "CS101_report_2024-03-01_0930.csv")
	content := snapshotHeader + "Silva,Ana,ana@example.edu,ana@school.edu,1001,50,55,65,50\n"
	require.NoError(t, os.WriteFile(later, []byte(content), 0o644))
	require.NoError(t, os.WriteFile(earlier, []byte(content), 0o644))

	repo := NewReportRepository()
	table, err := repo.LoadReports([]string{later, earlier})
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.True(t, table.Rows[0].Day.Before(table.Rows[1].Day))
}

func TestLoadAssignments(t *testing.T) {
	path := writeReport(t, "due_dates.csv",
		"Last name,First name,Primary email,School email,Student ID,Lab 1 (40),due_date\n"+
			"Silva,Ana,ana@example.edu,ana@school.edu,1001,100,2024-03-15\n"+
			"Costa,Rui,rui@example.edu,rui@school.edu,1002,100,2024-03-15 18:00:00\n")

	repo := NewReportRepository()
	table, err := repo.LoadAssignments(path)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), table.Rows[0].DueDate)
	assert.Equal(t, time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC), table.Rows[1].DueDate)
	assert.Equal(t, 40.0, table.Rows[0].Points["lab_1_(40)"])
}

func TestLoadAssignmentsRequiresDueDateColumn(t *testing.T) {
	path := writeReport(t, "due_dates.csv",
		"Last name,First name,Primary email,School email,Student ID,Lab 1 (40)\n"+
			"Silva,Ana,ana@example.edu,ana@school.edu,1001,100\n")

	repo := NewReportRepository()
	_, err := repo.LoadAssignments(path)
	assert.ErrorIs(t, err, types.ErrMissingDueDateColumn)
}

func TestLoadReportsRequiresIdentityColumns(t *testing.T) {
	path := writeReport(t, "CS101_report_2024-03-01_0930.csv",
		"Lab 1 (40)\n50\n")

	repo := NewReportRepository()
	_, err := repo.LoadReports([]string{path})
	assert.True(t, errors.Is(err, types.ErrMissingIdentityColumns))
}

func TestToPoints(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		max      int
		expected float64
	}{
		{"rounds to nearest point", "33.3", 40, 13}, // 13.32 rounds down
		{"rounds half up", "51.25", 40, 21},         // 20.5 rounds up
		{"full credit", "100", 40, 40},
		{"empty is zero", "", 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := toPoints(tt.cell, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}

	_, err := toPoints("n/a", 40)
	assert.Error(t, err)
}
