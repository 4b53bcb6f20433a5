package entity

import (
	"fmt"
	"time"
)

// ReconciledRow is one (student, day) row after first-difference
// reconciliation: its points are the increments earned on that specific day,
// not the cumulative snapshot values.
type ReconciledRow struct {
	Key      StudentKey         `json:"key"`
	Day      time.Time          `json:"day"`
	DueDate  time.Time          `json:"due_date,omitempty"`
	DaysLate int                `json:"days_late"`
	Points   map[string]float64 `json:"points"`
	Total    float64            `json:"total"`
}

// ReconciledTable carries the reconciled rows plus the synthesized total
// column. TotalColumn is named "total_(T)" where T sums the declared maxima.
type ReconciledTable struct {
	Schema      Schema          `json:"schema"`
	TotalColumn string          `json:"total_column"`
	TotalMax    int             `json:"total_max"`
	HasDueDates bool            `json:"has_due_dates"`
	Rows        []ReconciledRow `json:"rows"`
}

// TotalColumnName builds the synthesized total column name for a combined
// maximum, e.g. "total_(120)".
func TotalColumnName(totalMax int) string {
	return fmt.Sprintf("total_(%d)", totalMax)
}
