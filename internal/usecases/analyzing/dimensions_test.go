package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/upskill-labs/upskill-api/internal/domain"
)

func TestFillBuckets(t *testing.T) {
	tests := []struct {
		name   string
		sparse []domain.BucketCount
		size   int
		want   []int
	}{
		{
			name:   "empty input yields all zeros",
			sparse: nil,
			size:   7,
			want:   []int{0, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "sparse counts land on their 1-based slots",
			sparse: []domain.BucketCount{
				{Key: 1, Count: 3},
				{Key: 7, Count: 2},
			},
			size: 7,
			want: []int{3, 0, 0, 0, 0, 0, 2},
		},
		{
			name: "keys outside the dimension are dropped",
			sparse: []domain.BucketCount{
				{Key: 0, Count: 9},
				{Key: 8, Count: 9},
				{Key: 4, Count: 1},
			},
			size: 7,
			want: []int{0, 0, 0, 1, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fillBuckets(tt.sparse, tt.size))
		})
	}
}

func TestFormatHistogram(t *testing.T) {
	counts := fillBuckets([]domain.BucketCount{{Key: 2, Count: 5}}, len(weekdayLabels))
	assert.Equal(t, "Sun: 0, Mon: 5, Tue: 0, Wed: 0, Thu: 0, Fri: 0, Sat: 0", formatHistogram(weekdayLabels, counts))

	monthCounts := fillBuckets(nil, len(monthLabels))
	assert.Equal(t, "Jan: 0, Feb: 0, Mar: 0, Apr: 0, May: 0, Jun: 0, Jul: 0, Aug: 0, Sep: 0, Oct: 0, Nov: 0, Dec: 0", formatHistogram(monthLabels, monthCounts))
}
