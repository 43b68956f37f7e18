package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/booking/model"
)

func day(d int) time.Time {
	return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "partial overlap at the tail",
			aStart: day(15), aEnd: day(20),
			bStart: day(18), bEnd: day(22),
			expected: true,
		},
		{
			name:   "back-to-back stays do not overlap",
			aStart: day(15), aEnd: day(20),
			bStart: day(20), bEnd: day(23),
			expected: false,
		},
		{
			name:   "preceding stay ending at checkin does not overlap",
			aStart: day(15), aEnd: day(20),
			bStart: day(10), bEnd: day(15),
			expected: false,
		},
		{
			name:   "identical stays overlap",
			aStart: day(15), aEnd: day(20),
			bStart: day(15), bEnd: day(20),
			expected: true,
		},
		{
			name:   "contained stay overlaps",
			aStart: day(15), aEnd: day(20),
			bStart: day(16), bEnd: day(18),
			expected: true,
		},
		{
			name:   "single shared night overlaps",
			aStart: day(15), aEnd: day(20),
			bStart: day(19), bEnd: day(21),
			expected: true,
		},
		{
			name:   "disjoint stays do not overlap",
			aStart: day(15), aEnd: day(17),
			bStart: day(20), bEnd: day(23),
			expected: false,
		},
		{
			name:   "zero-length stay inside another blocks nothing",
			aStart: day(18), aEnd: day(18),
			bStart: day(15), bEnd: day(20),
			expected: false,
		},
		{
			name:   "zero-length existing stay blocks nothing",
			aStart: day(15), aEnd: day(20),
			bStart: day(18), bEnd: day(18),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.Equal(t, tt.expected, got)

			mirrored := model.Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd)
			assert.Equal(t, tt.expected, mirrored, "overlap must be symmetric")
		})
	}
}
