// Package grading holds the pure transforms of the grading pipeline:
// snapshot reconciliation, late-penalty deduction, grade finalization and the
// points-by-lateness summary. Everything here operates on in-memory tables
// and has no I/O.
package grading

import (
	"sort"
	"time"

	"github.com/edutools/zybook-grader-go/internal/domain/entity"
)

const hoursPerDay = 24

// Reconcile turns cumulative snapshots into per-day increments. Rows are
// sorted by (key, day) and each points column is replaced by its first
// difference within the key group; the first row of a group keeps its raw
// value. With a roster, points columns are restricted to the intersection of
// reports and roster, the roster due date is attached to every row of that
// student, and days_late is derived from day - due_date. A total column over
// all points columns is synthesized either way.
func Reconcile(reports entity.ReportTable, roster *entity.AssignmentTable) entity.ReconciledTable {
	schema := reports.Schema
	var dueDates map[entity.StudentKey]time.Time
	if roster != nil {
		schema = schema.RestrictPoints(intersectPoints(reports.Schema, roster.Schema))
		dueDates = roster.DueDates()
	}

	pointsCols := schema.PointsColumnNames()
	totalMax := schema.TotalMaxPoints()
	totalCol := entity.TotalColumnName(totalMax)

	sorted := make([]entity.ReportRow, len(reports.Rows))
	copy(sorted, reports.Rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Key != sorted[j].Key {
			return sorted[i].Key.Less(sorted[j].Key)
		}
		return sorted[i].Day.Before(sorted[j].Day)
	})

	table := entity.ReconciledTable{
		Schema:      schema,
		TotalColumn: totalCol,
		TotalMax:    totalMax,
		HasDueDates: roster != nil,
	}

	// Grouped scan: within a key, each row's value becomes value[i]-value[i-1].
	var prev *entity.ReportRow
	for i := range sorted {
		row := sorted[i]

		if roster != nil {
			if _, ok := dueDates[row.Key]; !ok {
				// Left join of roster onto reports: students missing from the
				// roster drop out of the reconciled table.
				prev = nil
				continue
			}
		}

		rec := entity.ReconciledRow{
			Key:    row.Key,
			Day:    row.Day,
			Points: make(map[string]float64, len(pointsCols)),
		}

		for _, col := range pointsCols {
			value := row.Points[col]
			if prev != nil && prev.Key == row.Key {
				value -= prev.Points[col]
			}
			rec.Points[col] = value
			rec.Total += value
		}

		if roster != nil {
			rec.DueDate = dueDates[row.Key]
			rec.DaysLate = daysBetween(rec.DueDate, row.Day)
		}

		table.Rows = append(table.Rows, rec)
		prev = &sorted[i]
	}

	return table
}

// intersectPoints returns the points column names present in both schemas,
// in the order of the first.
func intersectPoints(a, b entity.Schema) []string {
	inB := make(map[string]bool)
	for _, name := range b.PointsColumnNames() {
		inB[name] = true
	}

	var names []string
	for _, name := range a.PointsColumnNames() {
		if inB[name] {
			names = append(names, name)
		}
	}
	return names
}

// daysBetween is the whole-day distance from due to day, truncated toward
// zero. Negative means the snapshot predates the due date.
func daysBetween(due, day time.Time) int {
	return int(day.Sub(due).Hours() / hoursPerDay)
}
