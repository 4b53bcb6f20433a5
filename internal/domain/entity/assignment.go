package entity

import "time"

// AssignmentRow is one due-date roster entry. Its points columns describe the
// maximum achievable schedule and are used only for column alignment and
// due-date lookup, never for scoring.
type AssignmentRow struct {
	Key     StudentKey         `json:"key"`
	DueDate time.Time          `json:"due_date"`
	Points  map[string]float64 `json:"points"`
}

// AssignmentTable is the loaded due-date roster.
type AssignmentTable struct {
	Schema Schema          `json:"schema"`
	Rows   []AssignmentRow `json:"rows"`
}

// DueDates indexes the roster by student key. On duplicate keys the first
// row wins.
func (t AssignmentTable) DueDates() map[StudentKey]time.Time {
	due := make(map[StudentKey]time.Time, len(t.Rows))
	for _, row := range t.Rows {
		if _, ok := due[row.Key]; !ok {
			due[row.Key] = row.DueDate
		}
	}
	return due
}
