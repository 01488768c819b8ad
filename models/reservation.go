package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Reservation statuses. Only APPROVED is ever set by the booking core;
// PENDING and REJECTED exist for future approval policy.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Reservation types.
const (
	ReservationSingle   = "SINGLE"
	ReservationDouble   = "DOUBLE"
	ReservationTraining = "TRAINING"
	ReservationPersonal = "PERSONAL"
)

// DefaultReservationDuration is applied when a request omits the duration.
const DefaultReservationDuration = 90

// datetimeRe matches the local combined date+time format YYYY-MM-DDTHH:MM.
// This is NOT an ISO instant: the value is timezone-naive and is compared
// and split on "T" as a plain string throughout the scheduler.
var datetimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T([01]\d|2[0-3]):[0-5]\d$`)

// Reservation is a booking of one court for a slot on a calendar date.
type Reservation struct {
	ID       string   `bson:"id" json:"_id"`
	Type     string   `bson:"type" json:"type"`
	Datetime string   `bson:"datetime" json:"datetime"`
	Duration int      `bson:"duration" json:"duration"`
	People   []string `bson:"people" json:"people"`
	Owner    string   `bson:"owner,omitempty" json:"owner,omitempty"`
	Court    string   `bson:"court" json:"court"`
	Status   string   `bson:"status" json:"status"`
	Paid     bool     `bson:"paid" json:"paid"`
	Notes    string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// SanitizedReservation is the projection exposed to members who appear in
// a reservation's participant list without owning it.
type SanitizedReservation struct {
	Court    string `json:"court"`
	Datetime string `json:"datetime"`
	Duration int    `json:"duration"`
	Type     string `json:"type"`
	Notes    string `json:"notes,omitempty"`
}

// IsValidDatetime reports whether s has the local YYYY-MM-DDTHH:MM shape.
func IsValidDatetime(s string) bool {
	return datetimeRe.MatchString(s)
}

// Date returns the YYYY-MM-DD part of the reservation datetime.
func (r *Reservation) Date() string {
	return strings.SplitN(r.Datetime, "T", 2)[0]
}

// StartTime returns the HH:MM part of the reservation datetime.
func (r *Reservation) StartTime() string {
	parts := strings.SplitN(r.Datetime, "T", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Sanitize strips owner, participants, payment and status information.
func (r *Reservation) Sanitize() SanitizedReservation {
	return SanitizedReservation{
		Court:    r.Court,
		Datetime: r.Datetime,
		Duration: r.Duration,
		Type:     r.Type,
		Notes:    r.Notes,
	}
}

func isReservationType(t string) bool {
	switch t {
	case ReservationSingle, ReservationDouble, ReservationTraining, ReservationPersonal:
		return true
	}
	return false
}

func isReservationStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ApplyDefaults fills the defaults the original schema applies on create.
func (r *Reservation) ApplyDefaults() {
	if r.Duration == 0 {
		r.Duration = DefaultReservationDuration
	}
	if r.Status == "" {
		r.Status = StatusApproved
	}
	if r.People == nil {
		r.People = []string{}
	}
}

// Validate checks the reservation document before persistence.
func (r *Reservation) Validate() error {
	if !isReservationType(r.Type) {
		return fmt.Errorf("invalid reservation type %q", r.Type)
	}
	if !IsValidDatetime(r.Datetime) {
		return fmt.Errorf("invalid reservation datetime %q", r.Datetime)
	}
	if r.Duration <= 0 {
		return fmt.Errorf("reservation duration must be positive")
	}
	if r.Court == "" {
		return fmt.Errorf("reservation must reference a court")
	}
	if !isReservationStatus(r.Status) {
		return fmt.Errorf("invalid reservation status %q", r.Status)
	}
	for _, p := range r.People {
		if len(p) > 50 {
			return fmt.Errorf("participant name cannot be more than 50 characters")
		}
	}
	if len(r.Notes) > 500 {
		return fmt.Errorf("notes cannot be more than 500 characters")
	}
	return nil
}
