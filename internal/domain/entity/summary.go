package entity

// MarginLabel names the crosstab margin row and column.
const MarginLabel = "All"

// SummaryRow is one student's crosstab row: total points earned per lateness
// bucket, plus the row margin.
type SummaryRow struct {
	Key   StudentKey         `json:"key"`
	Cells map[string]float64 `json:"cells"`
	Total float64            `json:"total"`
}

// SummaryTable is the points-by-lateness crosstab produced on multi-report
// runs. Buckets are days-late values when a roster was given, snapshot days
// otherwise. ColumnTotals and GrandTotal form the margin row.
type SummaryTable struct {
	Buckets      []string           `json:"buckets"`
	Rows         []SummaryRow       `json:"rows"`
	ColumnTotals map[string]float64 `json:"column_totals"`
	GrandTotal   float64            `json:"grand_total"`
}
