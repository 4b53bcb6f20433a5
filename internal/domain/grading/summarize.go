package grading

import (
	"sort"
	"strconv"

	"github.com/edutools/zybook-grader-go/internal/domain/entity"
)

const dayBucketFormat = "2006-01-02"

// Summarize cross-tabulates the reconciled total points: one row per student,
// one column per lateness bucket, cell = total points earned in that bucket,
// with "All" margins on both axes. With a roster the buckets are days-late
// values; without one they fall back to the snapshot day.
func Summarize(table entity.ReconciledTable) entity.SummaryTable {
	bucketOf := func(row entity.ReconciledRow) string {
		if table.HasDueDates {
			return strconv.Itoa(row.DaysLate)
		}
		return row.Day.Format(dayBucketFormat)
	}

	bucketSet := make(map[string]bool)
	byKey := make(map[entity.StudentKey]*entity.SummaryRow)
	var keys []entity.StudentKey

	for _, row := range table.Rows {
		bucket := bucketOf(row)
		bucketSet[bucket] = true

		sum, ok := byKey[row.Key]
		if !ok {
			sum = &entity.SummaryRow{
				Key:   row.Key,
				Cells: make(map[string]float64),
			}
			byKey[row.Key] = sum
			keys = append(keys, row.Key)
		}
		sum.Cells[bucket] += row.Total
		sum.Total += row.Total
	}

	buckets := make([]string, 0, len(bucketSet))
	for bucket := range bucketSet {
		buckets = append(buckets, bucket)
	}
	if table.HasDueDates {
		// Numeric sort so -1 precedes 0 precedes 10.
		sort.Slice(buckets, func(i, j int) bool {
			a, _ := strconv.Atoi(buckets[i])
			b, _ := strconv.Atoi(buckets[j])
			return a < b
		})
	} else {
		sort.Strings(buckets)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	summary := entity.SummaryTable{
		Buckets:      buckets,
		ColumnTotals: make(map[string]float64, len(buckets)),
	}
	for _, key := range keys {
		row := byKey[key]
		for bucket, value := range row.Cells {
			summary.ColumnTotals[bucket] += value
		}
		summary.GrandTotal += row.Total
		summary.Rows = append(summary.Rows, *row)
	}

	return summary
}
