package grading

import (
	"sort"

	"github.com/edutools/zybook-grader-go/internal/domain/entity"
)

// Finalize drops the temporal columns, folds all days of a student into one
// row by summing every points column, and derives the graded percentages:
// total = summed total points / max * 100, final = 100 when total reaches the
// threshold (the curve-to-full-credit rule) and total itself otherwise,
// final_pts = final scaled back to points. A threshold of 100 makes the step
// function an identity on the observed range.
func Finalize(table entity.ReconciledTable, threshold int) entity.GradeReport {
	byKey := make(map[entity.StudentKey]*entity.GradeRow)
	var keys []entity.StudentKey

	for _, row := range table.Rows {
		grade, ok := byKey[row.Key]
		if !ok {
			grade = &entity.GradeRow{
				Key:    row.Key,
				Points: make(map[string]float64),
			}
			byKey[row.Key] = grade
			keys = append(keys, row.Key)
		}
		for col, value := range row.Points {
			grade.Points[col] += value
		}
		grade.TotalPts += row.Total
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	report := entity.GradeReport{
		PointsColumns: table.Schema.PointsColumns(),
		TotalColumn:   table.TotalColumn,
		TotalMax:      table.TotalMax,
		Threshold:     threshold,
	}

	for _, key := range keys {
		grade := byKey[key]
		if table.TotalMax > 0 {
			grade.Total = grade.TotalPts / float64(table.TotalMax) * 100
		}
		grade.Final = grade.Total
		if grade.Total >= float64(threshold) {
			grade.Final = 100
		}
		grade.FinalPts = grade.Final / 100 * float64(table.TotalMax)
		report.Rows = append(report.Rows, *grade)
	}

	return report
}
