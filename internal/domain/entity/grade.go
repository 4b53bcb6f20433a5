package entity

// GradeRow is the final per-student grade: points summed over the whole run,
// percentage total, thresholded final percentage and its point equivalent.
type GradeRow struct {
	Key      StudentKey         `json:"key"`
	Points   map[string]float64 `json:"points"`
	TotalPts float64            `json:"total_pts"`
	Total    float64            `json:"total"`
	Final    float64            `json:"final"`
	FinalPts float64            `json:"final_pts"`
}

// GradeReport is the finalized grade table, one row per student, sorted by
// identity key.
type GradeReport struct {
	PointsColumns []Column   `json:"points_columns"`
	TotalColumn   string     `json:"total_column"`
	TotalMax      int        `json:"total_max"`
	Threshold     int        `json:"threshold"`
	Rows          []GradeRow `json:"rows"`
}
