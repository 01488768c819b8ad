package schedule

import (
	"courtside/models"
)

// IsSlotFree decides whether the requested slot is bookable on a court,
// given the reservations already stored for that date and the court's
// recurring blackout blocks.
//
// existing entries whose date part differs from the requested date are
// ignored, as is the reservation identified by excludeID so that editing
// a reservation never conflicts with itself. Court opening hours are NOT
// enforced here; callers that need an in-hours guarantee must check
// separately.
//
// The function performs no mutation and is safe to call speculatively
// before any write.
func IsSlotFree(existing []models.Reservation, blocks []models.ReservedTimeBlock, datetime string, duration int, excludeID string) bool {
	date := DateOf(datetime)
	start := TimeOf(datetime)

	for _, r := range existing {
		if r.Date() != date {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if Overlaps(start, duration, r.StartTime(), r.Duration) {
			return false
		}
	}

	for _, b := range ActiveBlocks(blocks, date) {
		if Overlaps(start, duration, b.StartTime, b.Duration) {
			return false
		}
	}

	return true
}
