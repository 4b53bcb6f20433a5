package entity

import "time"

// ReportRow is one student's cumulative point record from one dated snapshot.
type ReportRow struct {
	Key    StudentKey         `json:"key"`
	Day    time.Time          `json:"day"`
	Points map[string]float64 `json:"points"`
	Meta   map[string]string  `json:"meta,omitempty"`
}

// ReportTable is the combined table of all loaded snapshots, one row per
// (student, day).
type ReportTable struct {
	Schema Schema      `json:"schema"`
	Rows   []ReportRow `json:"rows"`
}

// Days returns the distinct snapshot days present in the table, unordered.
func (t ReportTable) Days() []time.Time {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, row := range t.Rows {
		if !seen[row.Day] {
			seen[row.Day] = true
			days = append(days, row.Day)
		}
	}
	return days
}
