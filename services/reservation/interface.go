// Package reservation implements the reservation lifecycle: creation,
// mutation, bulk deletion and listing, with availability validation,
// ownership checks and best-effort push notification on every mutation.
package reservation

import (
	"context"

	"courtside/models"
	"courtside/services/auth"
)

// CreateInput carries a booking request. Owner is only honored when the
// acting principal is an administrator booking on someone's behalf.
type CreateInput struct {
	Type     string   `json:"type"`
	Court    string   `json:"court"`
	Datetime string   `json:"datetime"`
	Duration int      `json:"duration"`
	People   []string `json:"people"`
	Notes    string   `json:"notes"`
	Owner    string   `json:"owner"`
}

// UpdateInput is a partial update; nil fields are left untouched.
// Changing Datetime or Duration re-validates availability against the
// target date, excluding the reservation itself.
type UpdateInput struct {
	Type     *string   `json:"type"`
	Datetime *string   `json:"datetime"`
	Duration *int      `json:"duration"`
	People   *[]string `json:"people"`
	Notes    *string   `json:"notes"`
	Status   *string   `json:"status"`
	Paid     *bool     `json:"paid"`
}

// ListQuery selects reservations for listing. Dates holds zero, one or
// two YYYY-MM-DD values (empty: today; one: that date; two: range).
// When Offset is set the query switches to the recent-changes view:
// entries from the last twenty minutes, newest first, pages of ten.
type ListQuery struct {
	Dates  []string
	Offset *int
}

// ReservationService is the reservation lifecycle manager.
//
// Every operation takes the acting principal; an absent principal makes
// mutating operations return without effect. That fail-closed no-op is
// intentional: missing sessions are rejected upstream by the auth
// middleware, so the core never reports them as errors of its own.
type ReservationService interface {
	Create(ctx context.Context, actor auth.Principal, in CreateInput) (*models.Reservation, error)
	Update(ctx context.Context, actor auth.Principal, id string, in UpdateInput) (*models.Reservation, error)
	// DeleteMany removes the given reservations in one batch. The batch
	// is all-or-nothing: every id must resolve, be owned by the actor
	// (unless admin) and lie in the future, or nothing is deleted.
	DeleteMany(ctx context.Context, actor auth.Principal, ids []string) (int64, error)
	// GetByIDs returns the requested reservations. Non-admins may only
	// fetch reservations they own or participate in.
	GetByIDs(ctx context.Context, actor auth.Principal, ids []string) ([]models.Reservation, error)
	// ListOwn returns the actor's reservations plus shared ones where
	// the actor is merely a participant; shared entries are sanitized.
	ListOwn(ctx context.Context, actor auth.Principal, q ListQuery) ([]any, error)
	// ListAll returns reservations without ownership scoping. Admin only.
	ListAll(ctx context.Context, actor auth.Principal, q ListQuery) ([]models.Reservation, error)
}
