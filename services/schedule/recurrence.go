package schedule

import (
	"strings"
	"time"

	"courtside/models"
)

// weekDayNames maps time.Weekday (0=Sunday..6=Saturday) to the canonical
// weekday names used in blackout block definitions. The whole system
// depends on this one fixed, locale-independent table.
var weekDayNames = map[time.Weekday]string{
	time.Sunday:    "SUNDAY",
	time.Monday:    "MONDAY",
	time.Tuesday:   "TUESDAY",
	time.Wednesday: "WEDNESDAY",
	time.Thursday:  "THURSDAY",
	time.Friday:    "FRIDAY",
	time.Saturday:  "SATURDAY",
}

// WeekdayName resolves a YYYY-MM-DD date to its canonical weekday name.
func WeekdayName(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return weekDayNames[t.Weekday()], nil
}

// blockActiveOn reports whether a recurring block applies on the given
// date. A block is active iff its Days set contains the date's weekday
// AND the date is not listed as an exception.
func blockActiveOn(block models.ReservedTimeBlock, date, weekday string) bool {
	applies := false
	for _, d := range block.Days {
		if d == weekday {
			applies = true
			break
		}
	}
	if !applies {
		return false
	}
	for _, skip := range block.DatesNotApplied {
		if skip == date {
			return false
		}
	}
	return true
}

// ActiveBlocks resolves a court's recurring blackout definitions into the
// subset active on the given YYYY-MM-DD date. Pure function over the
// supplied data; blocks with no Days never recur.
func ActiveBlocks(blocks []models.ReservedTimeBlock, date string) []models.ReservedTimeBlock {
	weekday, err := WeekdayName(date)
	if err != nil {
		return nil
	}
	var active []models.ReservedTimeBlock
	for _, b := range blocks {
		if blockActiveOn(b, date, weekday) {
			active = append(active, b)
		}
	}
	return active
}

// DateOf returns the YYYY-MM-DD part of a local datetime string.
func DateOf(datetime string) string {
	return strings.SplitN(datetime, "T", 2)[0]
}

// TimeOf returns the HH:MM part of a local datetime string.
func TimeOf(datetime string) string {
	parts := strings.SplitN(datetime, "T", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// FormatDatetime renders a time.Time as the local combined datetime
// string the reservation model stores.
func FormatDatetime(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}
