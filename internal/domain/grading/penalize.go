package grading

import "github.com/edutools/zybook-grader-go/internal/domain/entity"

// Penalize deducts a fraction of the points earned on late days. For each
// points column, max(days_late, 0) * penaltyPercent/100 of the already-earned
// value is subtracted; on-time and early rows are never touched. The
// synthesized total column is penalized the same way so that downstream
// percentages reflect the deduction.
func Penalize(table entity.ReconciledTable, penaltyPercent int) entity.ReconciledTable {
	pen := float64(penaltyPercent) / 100

	out := table
	out.Rows = make([]entity.ReconciledRow, len(table.Rows))
	for i, row := range table.Rows {
		lateDays := row.DaysLate
		if lateDays < 0 {
			lateDays = 0
		}
		factor := float64(lateDays) * pen

		penalized := row
		penalized.Points = make(map[string]float64, len(row.Points))
		for col, value := range row.Points {
			penalized.Points[col] = value - factor*value
		}
		penalized.Total = row.Total - factor*row.Total
		out.Rows[i] = penalized
	}
	return out
}
