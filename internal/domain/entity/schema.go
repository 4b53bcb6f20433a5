package entity

import (
	"regexp"
	"strconv"
	"strings"
)

// ColumnClass classifies a report column after header normalization.
type ColumnClass int

const (
	// ColumnIdentity is one of the five student key columns.
	ColumnIdentity ColumnClass = iota
	// ColumnTemporal is a date column added by the pipeline (day, due_date, days_late).
	ColumnTemporal
	// ColumnPoints is an assignment column whose name ends with its maximum, e.g. "chapter_1_(25)".
	ColumnPoints
	// ColumnOther is inert metadata: never summed, never penalized.
	ColumnOther
)

// KeyColumns lists the identity columns, in output order. Together they form
// the composite student key.
var KeyColumns = []string{
	"last_name",
	"first_name",
	"primary_email",
	"school_email",
	"student_id",
}

var temporalColumns = map[string]bool{
	"day":       true,
	"due_date":  true,
	"days_late": true,
}

var pointsPattern = regexp.MustCompile(`\((\d+)\)$`)

// Column is one classified report column.
type Column struct {
	Name      string      `json:"name"`
	Class     ColumnClass `json:"class"`
	MaxPoints int         `json:"max_points,omitempty"`
}

// Schema is the classified column set of a loaded table. It is inferred once
// per file and carried through the pipeline instead of re-matching column
// names at every stage.
type Schema struct {
	Columns []Column `json:"columns"`
}

// NormalizeHeader maps a raw CSV header to its canonical column name.
func NormalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// MaxPointsFromName extracts the declared maximum from a points column name
// like "lab_3_(40)". The second return is false for non-points names.
func MaxPointsFromName(name string) (int, bool) {
	m := pointsPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	pts, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return pts, true
}

// InferSchema classifies already-normalized headers.
func InferSchema(headers []string) Schema {
	identity := make(map[string]bool, len(KeyColumns))
	for _, k := range KeyColumns {
		identity[k] = true
	}

	columns := make([]Column, 0, len(headers))
	for _, name := range headers {
		col := Column{Name: name, Class: ColumnOther}
		switch {
		case identity[name]:
			col.Class = ColumnIdentity
		case temporalColumns[name]:
			col.Class = ColumnTemporal
		default:
			if max, ok := MaxPointsFromName(name); ok {
				col.Class = ColumnPoints
				col.MaxPoints = max
			}
		}
		columns = append(columns, col)
	}
	return Schema{Columns: columns}
}

// PointsColumns returns the points columns in schema order.
func (s Schema) PointsColumns() []Column {
	var cols []Column
	for _, c := range s.Columns {
		if c.Class == ColumnPoints {
			cols = append(cols, c)
		}
	}
	return cols
}

// PointsColumnNames returns the points column names in schema order.
func (s Schema) PointsColumnNames() []string {
	var names []string
	for _, c := range s.PointsColumns() {
		names = append(names, c.Name)
	}
	return names
}

// TotalMaxPoints sums the declared maxima of all points columns.
func (s Schema) TotalMaxPoints() int {
	total := 0
	for _, c := range s.PointsColumns() {
		total += c.MaxPoints
	}
	return total
}

// HasColumn reports whether the schema contains the named column.
func (s Schema) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// RestrictPoints returns a copy of the schema keeping only points columns
// whose names appear in keep. Identity, temporal and metadata columns are
// always preserved.
func (s Schema) RestrictPoints(keep []string) Schema {
	keepSet := make(map[string]bool, len(keep))
	for _, name := range keep {
		keepSet[name] = true
	}

	out := Schema{}
	for _, c := range s.Columns {
		if c.Class == ColumnPoints && !keepSet[c.Name] {
			continue
		}
		out.Columns = append(out.Columns, c)
	}
	return out
}
