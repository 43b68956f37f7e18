package model

import "time"

// Stay is a booked half-open date range read back for conflict checks.
type Stay struct {
	CheckinDate  time.Time `db:"checkin_date"`
	CheckoutDate time.Time `db:"checkout_date"`
}

// Overlaps reports whether two half-open [start, end) stays intersect. It is
// the rule the conflict queries express in SQL (a1 < b2 AND b1 < a2, over
// non-empty ranges): back-to-back stays touch without overlapping, and a
// zero-length stay intersects nothing.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aStart.Before(aEnd) || !bStart.Before(bEnd) {
		return false
	}

	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
