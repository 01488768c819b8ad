package reservation

import (
	"context"
	"fmt"
	"time"

	courtRepo "courtside/database/repository/court"
	reservationRepo "courtside/database/repository/reservation"
	userRepo "courtside/database/repository/user"
	"courtside/models"
	"courtside/services/auth"
	"courtside/services/notification"
	"courtside/services/schedule"
	"courtside/utils"
)

// Recent-changes view parameters: entries touched within the last
// twenty minutes, pages of ten.
const (
	recentWindow   = 20 * time.Minute
	recentPageSize = 10
)

// DefaultReservationService implements ReservationService on top of the
// Mongo repositories and the push queue.
type DefaultReservationService struct {
	Repo      reservationRepo.ReservationRepository
	CourtRepo courtRepo.CourtRepository
	UserRepo  userRepo.UserRepository
	Notifier  notification.Publisher

	// now is the clock; tests substitute a fixed one.
	now   func() time.Time
	locks *keyedMutex
}

// NewDefaultReservationService constructs the reservation lifecycle manager.
func NewDefaultReservationService(
	repo reservationRepo.ReservationRepository,
	courts courtRepo.CourtRepository,
	users userRepo.UserRepository,
	notifier notification.Publisher,
) *DefaultReservationService {
	return &DefaultReservationService{
		Repo:      repo,
		CourtRepo: courts,
		UserRepo:  users,
		Notifier:  notifier,
		now:       time.Now,
		locks:     newKeyedMutex(),
	}
}

// Create books a slot. The availability check and the insert run under
// a per-court-per-date lock so two concurrent requests for the same day
// cannot both pass the check and double-book.
func (s *DefaultReservationService) Create(ctx context.Context, actor auth.Principal, in CreateInput) (*models.Reservation, error) {
	if !actor.IsLoggedIn() {
		return nil, nil
	}

	// Admins book on behalf: the owner is whatever they name, possibly
	// nobody (walk-ins). Members always own their bookings.
	owner := actor.UserID()
	if actor.IsAdmin() {
		owner = in.Owner
	}

	r := &models.Reservation{
		Type:     in.Type,
		Datetime: in.Datetime,
		Duration: in.Duration,
		People:   in.People,
		Owner:    owner,
		Court:    in.Court,
		Notes:    in.Notes,
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, utils.NewAPIError(utils.ErrInvalidData, map[string]any{"details": err.Error()})
	}

	court, err := s.CourtRepo.GetByID(ctx, r.Court)
	if err != nil {
		return nil, err
	}
	if court == nil {
		return nil, utils.NewAPIError(utils.ErrResourceNotFound, map[string]any{"resource": "court"})
	}

	unlock := s.locks.Lock(slotKey(r.Court, r.Date()))
	defer unlock()

	existing, err := s.Repo.GetByCourtAndDate(ctx, r.Court, r.Date())
	if err != nil {
		return nil, err
	}
	if !schedule.IsSlotFree(existing, court.ReservationsInfo.ReservedTimes, r.Datetime, r.Duration, "") {
		return nil, utils.NewAPIError(utils.ErrReservationTimeConflict, nil)
	}

	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.notify(ctx, notification.EventNew, "New reservation", r, actor)
	return r, nil
}

// Update applies a partial edit. Moving the slot in time re-runs the
// availability check against the target date, excluding the reservation
// itself so an unchanged slot never conflicts with its own entry.
// Status and Paid are administrative fields and are ignored for members.
func (s *DefaultReservationService) Update(ctx context.Context, actor auth.Principal, id string, in UpdateInput) (*models.Reservation, error) {
	if !actor.IsLoggedIn() {
		return nil, nil
	}

	r, err := s.getOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.IsOwner(r.Owner) {
		return nil, utils.NewAPIError(utils.ErrUnauthorized, nil)
	}

	reschedule := false
	if in.Type != nil {
		r.Type = *in.Type
	}
	if in.Datetime != nil && *in.Datetime != r.Datetime {
		r.Datetime = *in.Datetime
		reschedule = true
	}
	if in.Duration != nil && *in.Duration != r.Duration {
		r.Duration = *in.Duration
		reschedule = true
	}
	if in.People != nil {
		r.People = *in.People
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
	if actor.IsAdmin() {
		if in.Status != nil {
			r.Status = *in.Status
		}
		if in.Paid != nil {
			r.Paid = *in.Paid
		}
	}

	if err := r.Validate(); err != nil {
		return nil, utils.NewAPIError(utils.ErrInvalidData, map[string]any{"details": err.Error()})
	}

	if reschedule {
		court, err := s.CourtRepo.GetByID(ctx, r.Court)
		if err != nil {
			return nil, err
		}
		if court == nil {
			return nil, utils.NewAPIError(utils.ErrResourceNotFound, map[string]any{"resource": "court"})
		}

		unlock := s.locks.Lock(slotKey(r.Court, r.Date()))
		defer unlock()

		existing, err := s.Repo.GetByCourtAndDate(ctx, r.Court, r.Date())
		if err != nil {
			return nil, err
		}
		if !schedule.IsSlotFree(existing, court.ReservationsInfo.ReservedTimes, r.Datetime, r.Duration, r.ID) {
			return nil, utils.NewAPIError(utils.ErrReservationTimeConflict, nil)
		}
	}

	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.notify(ctx, notification.EventUpdate, "Updated reservation", r, actor)
	return r, nil
}

// DeleteMany removes a batch of reservations. The batch is atomic in
// its checks: one missing id, one foreign reservation or one entry
// already in the past fails the whole request and nothing is deleted.
// Elapsed reservations are immutable history for admins too.
func (s *DefaultReservationService) DeleteMany(ctx context.Context, actor auth.Principal, ids []string) (int64, error) {
	if !actor.IsLoggedIn() || len(ids) == 0 {
		return 0, nil
	}

	found, err := s.Repo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(found) != len(dedup(ids)) {
		return 0, utils.NewAPIError(utils.ErrResourceNotFound, map[string]any{"resource": "reservation"})
	}

	nowStr := schedule.FormatDatetime(s.now())
	for i := range found {
		if !actor.IsAdmin() && !actor.IsOwner(found[i].Owner) {
			return 0, utils.NewAPIError(utils.ErrUnauthorized, nil)
		}
		if found[i].Datetime < nowStr {
			return 0, utils.NewAPIError(utils.ErrDateInThePast, nil)
		}
	}

	deleted, err := s.Repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}

	for i := range found {
		s.notify(ctx, notification.EventDelete, "Deleted reservation", &found[i], actor)
	}
	return deleted, nil
}

// GetByIDs fetches specific reservations. Members only see entries they
// own or appear in as a participant.
func (s *DefaultReservationService) GetByIDs(ctx context.Context, actor auth.Principal, ids []string) ([]models.Reservation, error) {
	if !actor.IsLoggedIn() {
		return nil, nil
	}

	found, err := s.Repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(dedup(ids)) {
		return nil, utils.NewAPIError(utils.ErrResourceNotFound, map[string]any{"resource": "reservation"})
	}
	if !actor.IsAdmin() {
		for i := range found {
			if !actor.IsOwner(found[i].Owner) && !isParticipant(&found[i], actor) {
				return nil, utils.NewAPIError(utils.ErrUnauthorized, nil)
			}
		}
	}
	return found, nil
}

// ListOwn returns the actor's view of the calendar: full documents for
// reservations they own, sanitized projections for reservations that
// merely list them as a participant.
func (s *DefaultReservationService) ListOwn(ctx context.Context, actor auth.Principal, q ListQuery) ([]any, error) {
	if !actor.IsLoggedIn() {
		return nil, nil
	}

	rows, err := s.query(ctx, q, actor.UserID(), actor.User.Name)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(rows))
	for i := range rows {
		if actor.IsOwner(rows[i].Owner) {
			out = append(out, rows[i])
		} else {
			out = append(out, rows[i].Sanitize())
		}
	}
	return out, nil
}

// ListAll returns unscoped reservations for the admin views.
func (s *DefaultReservationService) ListAll(ctx context.Context, actor auth.Principal, q ListQuery) ([]models.Reservation, error) {
	if !actor.IsAdmin() {
		return nil, utils.NewAPIError(utils.ErrUnauthorized, nil)
	}
	return s.query(ctx, q, "", "")
}

// query resolves a ListQuery into repository calls shared by the member
// and admin listings.
func (s *DefaultReservationService) query(ctx context.Context, q ListQuery, owner, participant string) ([]models.Reservation, error) {
	if q.Offset != nil {
		since := schedule.FormatDatetime(s.now().Add(-recentWindow))
		return s.Repo.GetRecent(ctx, since, owner, *q.Offset, recentPageSize)
	}

	var from, to string
	switch len(q.Dates) {
	case 0:
		today := schedule.DateOf(schedule.FormatDatetime(s.now()))
		from, to = today, today
	case 1:
		from, to = q.Dates[0], q.Dates[0]
	case 2:
		from, to = q.Dates[0], q.Dates[1]
	default:
		return nil, utils.NewAPIError(utils.ErrInvalidQuery, nil)
	}
	if !models.IsValidDate(from) || !models.IsValidDate(to) || from > to {
		return nil, utils.NewAPIError(utils.ErrInvalidQuery, nil)
	}

	return s.Repo.GetByDateRange(ctx, from, to, owner, participant)
}

// getOne fetches a single reservation or reports resource_not_found.
func (s *DefaultReservationService) getOne(ctx context.Context, id string) (*models.Reservation, error) {
	found, err := s.Repo.GetByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, utils.NewAPIError(utils.ErrResourceNotFound, map[string]any{"resource": "reservation"})
	}
	return &found[0], nil
}

// notify publishes a push event for a mutation. The body mirrors what
// the admin devices display: slot, court name and the name of the user
// the reservation belongs to.
func (s *DefaultReservationService) notify(ctx context.Context, kind, title string, r *models.Reservation, actor auth.Principal) {
	courtName := r.Court
	if court, err := s.CourtRepo.GetByID(ctx, r.Court); err == nil && court != nil {
		courtName = court.Name
	}

	name := ""
	if actor.User != nil {
		name = actor.User.Name
	}
	if r.Owner != "" && r.Owner != actor.UserID() {
		if owner, err := s.UserRepo.GetByID(ctx, r.Owner); err == nil && owner != nil {
			name = owner.Name
		}
	}

	s.Notifier.PublishReservationEvent(ctx, notification.Event{
		Kind:          kind,
		Title:         title,
		Body:          fmt.Sprintf("%s - %s\nCourt: %s\nName: %s", r.Date(), r.StartTime(), courtName, name),
		ReservationID: r.ID,
		Datetime:      r.Datetime,
	})
}

func isParticipant(r *models.Reservation, actor auth.Principal) bool {
	if actor.User == nil {
		return false
	}
	for _, p := range r.People {
		if p == actor.User.Name {
			return true
		}
	}
	return false
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
