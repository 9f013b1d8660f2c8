package analyzing

import (
	"fmt"
	"strings"

	"github.com/upskill-labs/upskill-api/internal/domain"
)

// Fixed reporting dimensions. Every histogram is emitted over the full
// dimension in this order, whatever the store holds: a zero-initialized
// slice is built first and the sparse grouped counts are overlaid on top.

// weekdayLabels follows the 1..7 calendar convention with 1 = Sunday.
var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var monthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// fillBuckets overlays sparse grouped counts onto a zero-filled dimension of
// the given size. Keys are 1-based; anything outside the dimension is
// dropped rather than panicking the whole report.
func fillBuckets(sparse []domain.BucketCount, size int) []int {
	counts := make([]int, size)
	for _, bucket := range sparse {
		if bucket.Key < 1 || bucket.Key > size {
			continue
		}
		counts[bucket.Key-1] = bucket.Count
	}
	return counts
}

// formatHistogram renders "Sun: 2, Mon: 0, ..." the way the dashboard charts
// consume it.
func formatHistogram(labels []string, counts []int) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("%s: %d", label, counts[i])
	}
	return strings.Join(parts, ", ")
}

// fillCourseAverages overlays sparse per-course means onto the fixed course
// catalog, ascending by course id with 0 for courses without rows.
func fillCourseAverages(sparse []domain.CourseAverage) map[int]float64 {
	byCourse := make(map[int]float64, domain.CourseCount)
	for _, average := range sparse {
		byCourse[average.CourseID] = average.Average
	}
	return byCourse
}
