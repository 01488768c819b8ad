package models

import (
	"fmt"
	"regexp"
)

// Court surface types.
const (
	CourtTypeAsphalt = "ASPHALT"
	CourtTypeHard    = "HARD"
)

// Blackout block types.
const (
	BlockTypeTraining = "TRAINING"
	BlockTypeOther    = "OTHER"
)

// RepeatWeekly is the only recurrence mode the scheduler resolves.
const RepeatWeekly = "WEEKLY"

// WeekDays lists the canonical weekday names used by recurring blocks,
// in the fixed order the whole system relies on.
var WeekDays = []string{
	"MONDAY",
	"TUESDAY",
	"WEDNESDAY",
	"THURSDAY",
	"FRIDAY",
	"SATURDAY",
	"SUNDAY",
}

var (
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ReservedTimeBlock is a recurring blackout window embedded in a court.
// A block with an empty Days set never recurs and is effectively inert.
type ReservedTimeBlock struct {
	StartTime       string   `bson:"startTime" json:"startTime" binding:"required"`
	Duration        int      `bson:"duration" json:"duration"`
	Type            string   `bson:"type" json:"type" binding:"required"`
	Repeat          string   `bson:"repeat" json:"repeat"`
	Days            []string `bson:"days,omitempty" json:"days,omitempty"`
	Notes           string   `bson:"notes,omitempty" json:"notes,omitempty"`
	DatesNotApplied []string `bson:"datesNotApplied,omitempty" json:"datesNotApplied,omitempty"`
}

// ReservationsInfo holds a court's daily opening window and booking defaults.
type ReservationsInfo struct {
	StartTime     string              `bson:"startTime" json:"startTime" binding:"required"`
	EndTime       string              `bson:"endTime" json:"endTime" binding:"required"`
	Duration      int                 `bson:"duration" json:"duration" binding:"required"`
	ReservedTimes []ReservedTimeBlock `bson:"reservedTimes" json:"reservedTimes"`
}

// Court is a bookable tennis court owned by administrators.
type Court struct {
	ID               string           `bson:"id" json:"_id"`
	Name             string           `bson:"name" json:"name" binding:"required"`
	Type             string           `bson:"type" json:"type" binding:"required"`
	ReservationsInfo ReservationsInfo `bson:"reservationsInfo" json:"reservationsInfo" binding:"required"`
}

// IsValidTime reports whether s is a zero-padded 24-hour HH:MM string.
// Zero padding keeps lexicographic and chronological order aligned.
func IsValidTime(s string) bool {
	return timeRe.MatchString(s)
}

// IsValidDate reports whether s is a YYYY-MM-DD string.
func IsValidDate(s string) bool {
	return dateRe.MatchString(s)
}

func isWeekDay(d string) bool {
	for _, w := range WeekDays {
		if w == d {
			return true
		}
	}
	return false
}

// ApplyDefaults fills in the defaults the original schema applies on write.
func (b *ReservedTimeBlock) ApplyDefaults() {
	if b.Duration == 0 {
		b.Duration = 90
	}
	if b.Repeat == "" {
		b.Repeat = RepeatWeekly
	}
}

// Validate checks a blackout block against the schema constraints.
func (b *ReservedTimeBlock) Validate() error {
	if !IsValidTime(b.StartTime) {
		return fmt.Errorf("reserved time block: invalid start time %q", b.StartTime)
	}
	if b.Duration <= 0 {
		return fmt.Errorf("reserved time block: duration must be positive")
	}
	if b.Type != BlockTypeTraining && b.Type != BlockTypeOther {
		return fmt.Errorf("reserved time block: invalid type %q", b.Type)
	}
	if len(b.Notes) > 200 {
		return fmt.Errorf("reserved time block: notes cannot be more than 200 characters")
	}
	for _, d := range b.Days {
		if !isWeekDay(d) {
			return fmt.Errorf("reserved time block: invalid weekday %q", d)
		}
	}
	for _, d := range b.DatesNotApplied {
		if !IsValidDate(d) {
			return fmt.Errorf("reserved time block: invalid exception date %q", d)
		}
	}
	return nil
}

// Validate checks the court document before persistence.
func (ct *Court) Validate() error {
	if ct.Name == "" || len(ct.Name) > 60 {
		return fmt.Errorf("court name must be 1-60 characters")
	}
	if ct.Type != CourtTypeAsphalt && ct.Type != CourtTypeHard {
		return fmt.Errorf("invalid court type %q", ct.Type)
	}
	if !IsValidTime(ct.ReservationsInfo.StartTime) {
		return fmt.Errorf("invalid court start time %q", ct.ReservationsInfo.StartTime)
	}
	if !IsValidTime(ct.ReservationsInfo.EndTime) {
		return fmt.Errorf("invalid court end time %q", ct.ReservationsInfo.EndTime)
	}
	if ct.ReservationsInfo.Duration <= 0 {
		return fmt.Errorf("court default duration must be positive")
	}
	for i := range ct.ReservationsInfo.ReservedTimes {
		ct.ReservationsInfo.ReservedTimes[i].ApplyDefaults()
		if err := ct.ReservationsInfo.ReservedTimes[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
