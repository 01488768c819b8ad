// Package schedule implements the reservation scheduling core: the time
// range overlap predicate, the weekly recurrence resolver for court
// blackout blocks, and the availability validator combining both.
//
// All time values are local, timezone-naive strings: HH:MM for times and
// YYYY-MM-DD for dates. Zero padding makes lexicographic comparison
// equivalent to chronological comparison, which every predicate here
// relies on.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// timeRange is a half-open slot on a single calendar day.
type timeRange struct {
	start    string
	end      string
	duration int
}

// AddMinutes adds minutes to a zero-padded HH:MM time and returns the
// result in the same format. Court hours are assumed to stay within one
// calendar day, so wrapping past midnight is not handled.
func AddMinutes(hhmm string, minutes int) string {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return hhmm
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return hhmm
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return hhmm
	}
	total := h*60 + m + minutes
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}

func newTimeRange(start string, duration int) timeRange {
	return timeRange{
		start:    start,
		end:      AddMinutes(start, duration),
		duration: duration,
	}
}

// rangesOverlap reports whether two slots intersect. Boundary equality
// alone never counts: adjacent ranges (one's end equals the other's
// start) are free. Two slots with identical start and duration always
// collide.
func rangesOverlap(r, against timeRange) bool {
	return (against.start < r.start && r.start < against.end) ||
		(against.start < r.end && r.end < against.end) ||
		(against.start == r.start && r.duration == against.duration)
}

// Overlaps reports whether the slot (startA, durA) intersects the slot
// (startB, durB) on the same calendar day. The clause test is evaluated
// once per ordered pair so that strict containment is caught from either
// side and the predicate stays symmetric.
func Overlaps(startA string, durA int, startB string, durB int) bool {
	a := newTimeRange(startA, durA)
	b := newTimeRange(startB, durB)
	return rangesOverlap(a, b) || rangesOverlap(b, a)
}
