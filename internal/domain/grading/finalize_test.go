package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutools/zybook-grader-go/internal/domain/entity"
)

func gradeInput(rows ...entity.ReconciledRow) entity.ReconciledTable {
	return entity.ReconciledTable{
		Schema: entity.InferSchema([]string{
			"last_name", "first_name", "primary_email", "school_email", "student_id",
			"lab_1_(40)", "day",
		}),
		TotalColumn: "total_(40)",
		TotalMax:    40,
		Rows:        rows,
	}
}

func TestFinalizeThresholdStep(t *testing.T) {
	tests := []struct {
		name     string
		earned   float64
		expected float64
	}{
		{"just below threshold keeps its total", 27.96, 69.9}, // 27.96/40 = 69.9%
		{"exactly at threshold jumps to full credit", 28, 100},
		{"above threshold jumps to full credit", 38, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := gradeInput(entity.ReconciledRow{
				Key:    key("alice"),
				Points: map[string]float64{"lab_1_(40)": tt.earned},
				Total:  tt.earned,
			})

			out := Finalize(table, 70)

			require.Len(t, out.Rows, 1)
			assert.InDelta(t, tt.expected, out.Rows[0].Final, 1e-9)
			assert.InDelta(t, tt.expected/100*40, out.Rows[0].FinalPts, 1e-9)
		})
	}
}

func TestFinalizeSumsAllDaysPerStudent(t *testing.T) {
	alice := key("alice")
	table := gradeInput(
		entity.ReconciledRow{Key: alice, Day: time.Now(), Points: map[string]float64{"lab_1_(40)": 10}, Total: 10},
		entity.ReconciledRow{Key: alice, Day: time.Now(), Points: map[string]float64{"lab_1_(40)": 15}, Total: 15},
		entity.ReconciledRow{Key: key("bob"), Points: map[string]float64{"lab_1_(40)": 40}, Total: 40},
	)

	out := Finalize(table, 100)

	require.Len(t, out.Rows, 2)
	assert.Equal(t, alice, out.Rows[0].Key)
	assert.InDelta(t, 25.0, out.Rows[0].Points["lab_1_(40)"], 1e-9)
	assert.InDelta(t, 25.0, out.Rows[0].TotalPts, 1e-9)
	assert.InDelta(t, 62.5, out.Rows[0].Total, 1e-9)
	// With the threshold at 100 only a perfect score steps up.
	assert.InDelta(t, 62.5, out.Rows[0].Final, 1e-9)
	assert.InDelta(t, 100.0, out.Rows[1].Final, 1e-9)
}

func TestFinalizeSortsRowsByKey(t *testing.T) {
	table := gradeInput(
		entity.ReconciledRow{Key: key("zimmer"), Points: map[string]float64{"lab_1_(40)": 5}, Total: 5},
		entity.ReconciledRow{Key: key("adams"), Points: map[string]float64{"lab_1_(40)": 5}, Total: 5},
	)

	out := Finalize(table, 70)

	require.Len(t, out.Rows, 2)
	assert.Equal(t, "adams", out.Rows[0].Key.LastName)
	assert.Equal(t, "zimmer", out.Rows[1].Key.LastName)
}
