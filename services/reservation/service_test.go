package reservation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"courtside/models"
	"courtside/services/auth"
	"courtside/services/notification"
	"courtside/utils"
)

type fakeReservationRepo struct {
	reservations []models.Reservation

	deleteCalls int
	lastSince   string
	lastOffset  int
	lastLimit   int
}

func (f *fakeReservationRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		for _, id := range ids {
			if r.ID == id {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) GetByCourtAndDate(ctx context.Context, courtID, date string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.Court == courtID && strings.HasPrefix(r.Datetime, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) GetByDateRange(ctx context.Context, from, to, owner, participant string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.Datetime <= from+"T00:00" || r.Datetime >= to+"T23:59" {
			continue
		}
		if owner == "" && participant == "" {
			out = append(out, r)
			continue
		}
		if r.Owner == owner {
			out = append(out, r)
			continue
		}
		for _, p := range r.People {
			if p == participant && participant != "" {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) GetRecent(ctx context.Context, since, ownerID string, offset, limit int) ([]models.Reservation, error) {
	f.lastSince = since
	f.lastOffset = offset
	f.lastLimit = limit
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.Datetime < since {
			continue
		}
		if ownerID != "" && r.Owner != ownerID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReservationRepo) Create(ctx context.Context, r *models.Reservation) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	f.reservations = append(f.reservations, *r)
	return nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, r *models.Reservation) error {
	for i := range f.reservations {
		if f.reservations[i].ID == r.ID {
			f.reservations[i] = *r
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeReservationRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	f.deleteCalls++
	var kept []models.Reservation
	var deleted int64
	for _, r := range f.reservations {
		match := false
		for _, id := range ids {
			if r.ID == id {
				match = true
				break
			}
		}
		if match {
			deleted++
		} else {
			kept = append(kept, r)
		}
	}
	f.reservations = kept
	return deleted, nil
}

type fakeCourtRepo struct {
	courts map[string]*models.Court
}

func (f *fakeCourtRepo) GetByID(ctx context.Context, id string) (*models.Court, error) {
	return f.courts[id], nil
}

func (f *fakeCourtRepo) GetAll(ctx context.Context) ([]models.Court, error) {
	var out []models.Court
	for _, c := range f.courts {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourtRepo) Create(ctx context.Context, c *models.Court) error {
	f.courts[c.ID] = c
	return nil
}

func (f *fakeCourtRepo) Update(ctx context.Context, c *models.Court) error {
	f.courts[c.ID] = c
	return nil
}

func (f *fakeCourtRepo) Delete(ctx context.Context, id string) error {
	delete(f.courts, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetBySessionHash(ctx context.Context, hash string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	f.users[u.ID] = u
	return nil
}

type fakePublisher struct {
	events []notification.Event
}

func (f *fakePublisher) PublishReservationEvent(ctx context.Context, event notification.Event) {
	f.events = append(f.events, event)
}

var fixedNow = time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC) // a Monday

func newTestService() (*DefaultReservationService, *fakeReservationRepo, *fakePublisher) {
	repo := &fakeReservationRepo{}
	courts := &fakeCourtRepo{courts: map[string]*models.Court{
		"court-1": {
			ID:   "court-1",
			Name: "Center Court",
			Type: models.CourtTypeHard,
			ReservationsInfo: models.ReservationsInfo{
				StartTime: "08:00",
				EndTime:   "22:00",
				Duration:  90,
			},
		},
	}}
	users := &fakeUserRepo{users: map[string]*models.User{
		"user-1":  {ID: "user-1", Name: "Ana", Email: "ana@example.com", Role: models.RoleUser},
		"user-2":  {ID: "user-2", Name: "Bruno", Email: "bruno@example.com", Role: models.RoleUser},
		"admin-1": {ID: "admin-1", Name: "Clara", Email: "clara@example.com", Role: models.RoleAdmin},
	}}
	pub := &fakePublisher{}

	svc := NewDefaultReservationService(repo, courts, users, pub)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, pub
}

func memberPrincipal(svc *DefaultReservationService, id string) auth.Principal {
	users := svc.UserRepo.(*fakeUserRepo)
	return auth.Principal{User: users.users[id]}
}

func apiCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *utils.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	return apiErr.Code
}

func TestCreateBooksFreeSlot(t *testing.T) {
	svc, repo, pub := newTestService()
	actor := memberPrincipal(svc, "user-1")

	r, err := svc.Create(context.Background(), actor, CreateInput{
		Type:     models.ReservationSingle,
		Court:    "court-1",
		Datetime: "2024-03-12T10:30",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.ID == "" {
		t.Error("expected generated id")
	}
	if r.Duration != models.DefaultReservationDuration {
		t.Errorf("duration = %d, want default %d", r.Duration, models.DefaultReservationDuration)
	}
	if r.Status != models.StatusApproved {
		t.Errorf("status = %q, want APPROVED", r.Status)
	}
	if r.Owner != "user-1" {
		t.Errorf("owner = %q, want user-1", r.Owner)
	}
	if len(repo.reservations) != 1 {
		t.Fatalf("stored %d reservations, want 1", len(repo.reservations))
	}
	if len(pub.events) != 1 || pub.events[0].Kind != notification.EventNew {
		t.Errorf("expected one new-reservation event, got %+v", pub.events)
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	svc, repo, pub := newTestService()
	actor := memberPrincipal(svc, "user-1")

	if _, err := svc.Create(context.Background(), actor, CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12T10:30",
	}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	pub.events = nil

	// 11:30 starts inside the 10:30+90 slot.
	_, err := svc.Create(context.Background(), memberPrincipal(svc, "user-2"), CreateInput{
		Type: models.ReservationDouble, Court: "court-1", Datetime: "2024-03-12T11:30",
	})
	if code := apiCode(t, err); code != utils.ErrReservationTimeConflict {
		t.Fatalf("code = %q, want reservation_time_conflict", code)
	}
	if len(repo.reservations) != 1 {
		t.Errorf("conflicting create must not persist, have %d", len(repo.reservations))
	}
	if len(pub.events) != 0 {
		t.Errorf("conflicting create must not notify")
	}

	// Back-to-back at 12:00 is allowed.
	if _, err := svc.Create(context.Background(), memberPrincipal(svc, "user-2"), CreateInput{
		Type: models.ReservationDouble, Court: "court-1", Datetime: "2024-03-12T12:00",
	}); err != nil {
		t.Fatalf("adjacent Create: %v", err)
	}
}

func TestCreateRespectsRecurringBlock(t *testing.T) {
	svc, _, _ := newTestService()
	courts := svc.CourtRepo.(*fakeCourtRepo)
	courts.courts["court-1"].ReservationsInfo.ReservedTimes = []models.ReservedTimeBlock{{
		StartTime:       "18:00",
		Duration:        120,
		Type:            models.BlockTypeTraining,
		Repeat:          models.RepeatWeekly,
		Days:            []string{"MONDAY"},
		DatesNotApplied: []string{"2024-03-18"},
	}}
	actor := memberPrincipal(svc, "user-1")

	// 2024-03-11 is a Monday inside the block.
	_, err := svc.Create(context.Background(), actor, CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-11T18:30",
	})
	if code := apiCode(t, err); code != utils.ErrReservationTimeConflict {
		t.Fatalf("code = %q, want reservation_time_conflict", code)
	}

	// The following Monday is excepted via datesNotApplied.
	if _, err := svc.Create(context.Background(), actor, CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-18T18:30",
	}); err != nil {
		t.Fatalf("excepted Monday Create: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	actor := memberPrincipal(svc, "user-1")

	_, err := svc.Create(context.Background(), actor, CreateInput{
		Type: "MARATHON", Court: "court-1", Datetime: "2024-03-12T10:30",
	})
	if code := apiCode(t, err); code != utils.ErrInvalidData {
		t.Fatalf("bad type: code = %q, want invalid_data", code)
	}

	_, err = svc.Create(context.Background(), actor, CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12 10:30",
	})
	if code := apiCode(t, err); code != utils.ErrInvalidData {
		t.Fatalf("bad datetime: code = %q, want invalid_data", code)
	}

	_, err = svc.Create(context.Background(), actor, CreateInput{
		Type: models.ReservationSingle, Court: "missing", Datetime: "2024-03-12T10:30",
	})
	if code := apiCode(t, err); code != utils.ErrResourceNotFound {
		t.Fatalf("missing court: code = %q, want resource_not_found", code)
	}
}

func TestCreateWithoutPrincipalIsNoop(t *testing.T) {
	svc, repo, pub := newTestService()

	r, err := svc.Create(context.Background(), auth.Principal{}, CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12T10:30",
	})
	if r != nil || err != nil {
		t.Fatalf("expected silent no-op, got %v, %v", r, err)
	}
	if len(repo.reservations) != 0 || len(pub.events) != 0 {
		t.Error("no-op must not write or notify")
	}
}

func TestCreateOwnerOverride(t *testing.T) {
	svc, _, _ := newTestService()

	// Member supplied owners are ignored.
	r, err := svc.Create(context.Background(), memberPrincipal(svc, "user-1"), CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12T10:30", Owner: "user-2",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Owner != "user-1" {
		t.Errorf("member create owner = %q, want user-1", r.Owner)
	}

	// Admins may book on behalf of another user.
	r, err = svc.Create(context.Background(), memberPrincipal(svc, "admin-1"), CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12T14:00", Owner: "user-2",
	})
	if err != nil {
		t.Fatalf("admin Create: %v", err)
	}
	if r.Owner != "user-2" {
		t.Errorf("admin create owner = %q, want user-2", r.Owner)
	}

	// An admin booking with no owner stays ownerless (walk-in).
	r, err = svc.Create(context.Background(), memberPrincipal(svc, "admin-1"), CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12T16:00",
	})
	if err != nil {
		t.Fatalf("admin walk-in Create: %v", err)
	}
	if r.Owner != "" {
		t.Errorf("walk-in owner = %q, want empty", r.Owner)
	}
}

func TestUpdateExcludesOwnSlot(t *testing.T) {
	svc, _, pub := newTestService()
	actor := memberPrincipal(svc, "user-1")

	r, err := svc.Create(context.Background(), actor, CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12T10:30", Duration: 60,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	pub.events = nil

	// Extending in place overlaps only the reservation itself.
	dur := 90
	updated, err := svc.Update(context.Background(), actor, r.ID, UpdateInput{Duration: &dur})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Duration != 90 {
		t.Errorf("duration = %d, want 90", updated.Duration)
	}
	if len(pub.events) != 1 || pub.events[0].Kind != notification.EventUpdate {
		t.Errorf("expected one update event, got %+v", pub.events)
	}
}

func TestUpdateRejectsConflictAndForeign(t *testing.T) {
	svc, _, _ := newTestService()
	ana := memberPrincipal(svc, "user-1")
	bruno := memberPrincipal(svc, "user-2")

	first, err := svc.Create(context.Background(), ana, CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12T10:30",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(context.Background(), bruno, CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12T13:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Moving onto an occupied slot fails.
	dt := "2024-03-12T11:00"
	_, err = svc.Update(context.Background(), bruno, second.ID, UpdateInput{Datetime: &dt})
	if code := apiCode(t, err); code != utils.ErrReservationTimeConflict {
		t.Fatalf("code = %q, want reservation_time_conflict", code)
	}

	// Members cannot edit someone else's reservation.
	_, err = svc.Update(context.Background(), bruno, first.ID, UpdateInput{Datetime: &dt})
	if code := apiCode(t, err); code != utils.ErrUnauthorized {
		t.Fatalf("code = %q, want unauthorized", code)
	}
}

func TestUpdateAdministrativeFields(t *testing.T) {
	svc, _, _ := newTestService()
	ana := memberPrincipal(svc, "user-1")
	admin := memberPrincipal(svc, "admin-1")

	r, err := svc.Create(context.Background(), ana, CreateInput{
		Type: models.ReservationSingle, Court: "court-1", Datetime: "2024-03-12T10:30",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	paid := true
	updated, err := svc.Update(context.Background(), ana, r.ID, UpdateInput{Paid: &paid})
	if err != nil {
		t.Fatalf("member Update: %v", err)
	}
	if updated.Paid {
		t.Error("member must not flip the paid flag")
	}

	updated, err = svc.Update(context.Background(), admin, r.ID, UpdateInput{Paid: &paid})
	if err != nil {
		t.Fatalf("admin Update: %v", err)
	}
	if !updated.Paid {
		t.Error("admin paid update lost")
	}
}

func TestDeleteManyAllOrNothing(t *testing.T) {
	svc, repo, pub := newTestService()
	ana := memberPrincipal(svc, "user-1")

	repo.reservations = []models.Reservation{
		{ID: "r-past", Type: models.ReservationSingle, Datetime: "2024-03-10T10:00", Duration: 90, Court: "court-1", Owner: "user-1", Status: models.StatusApproved},
		{ID: "r-future", Type: models.ReservationSingle, Datetime: "2024-03-12T10:00", Duration: 90, Court: "court-1", Owner: "user-1", Status: models.StatusApproved},
		{ID: "r-foreign", Type: models.ReservationSingle, Datetime: "2024-03-12T14:00", Duration: 90, Court: "court-1", Owner: "user-2", Status: models.StatusApproved},
	}

	// Unknown id fails the batch.
	_, err := svc.DeleteMany(context.Background(), ana, []string{"r-future", "ghost"})
	if code := apiCode(t, err); code != utils.ErrResourceNotFound {
		t.Fatalf("code = %q, want resource_not_found", code)
	}

	// A foreign reservation fails the batch.
	_, err = svc.DeleteMany(context.Background(), ana, []string{"r-future", "r-foreign"})
	if code := apiCode(t, err); code != utils.ErrUnauthorized {
		t.Fatalf("code = %q, want unauthorized", code)
	}

	// A past reservation fails the batch for members.
	_, err = svc.DeleteMany(context.Background(), ana, []string{"r-future", "r-past"})
	if code := apiCode(t, err); code != utils.ErrDateInThePast {
		t.Fatalf("code = %q, want date_in_the_past", code)
	}
	if repo.deleteCalls != 0 {
		t.Fatalf("failed batches must not reach the repository, got %d delete calls", repo.deleteCalls)
	}
	if len(repo.reservations) != 3 {
		t.Fatalf("nothing may be deleted, have %d", len(repo.reservations))
	}

	// A clean batch deletes and notifies per reservation.
	deleted, err := svc.DeleteMany(context.Background(), ana, []string{"r-future"})
	if err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if len(pub.events) != 1 || pub.events[0].Kind != notification.EventDelete {
		t.Errorf("expected one delete event, got %+v", pub.events)
	}

	// Elapsed reservations stay immutable for admins as well.
	admin := memberPrincipal(svc, "admin-1")
	_, err = svc.DeleteMany(context.Background(), admin, []string{"r-past"})
	if code := apiCode(t, err); code != utils.ErrDateInThePast {
		t.Fatalf("admin past delete: code = %q, want date_in_the_past", code)
	}
}

func TestListOwnSanitizesSharedEntries(t *testing.T) {
	svc, repo, _ := newTestService()
	ana := memberPrincipal(svc, "user-1")

	repo.reservations = []models.Reservation{
		{ID: "mine", Type: models.ReservationSingle, Datetime: "2024-03-11T10:00", Duration: 90, Court: "court-1", Owner: "user-1", Status: models.StatusApproved, Paid: true},
		{ID: "shared", Type: models.ReservationDouble, Datetime: "2024-03-11T14:00", Duration: 90, Court: "court-1", Owner: "user-2", People: []string{"Ana"}, Status: models.StatusApproved},
	}

	out, err := svc.ListOwn(context.Background(), ana, ListQuery{})
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}

	var fullSeen, sanitizedSeen bool
	for _, e := range out {
		switch v := e.(type) {
		case models.Reservation:
			fullSeen = true
			if v.ID != "mine" {
				t.Errorf("full entry is %q, want mine", v.ID)
			}
		case models.SanitizedReservation:
			sanitizedSeen = true
			if v.Court != "court-1" || v.Datetime != "2024-03-11T14:00" {
				t.Errorf("sanitized entry mangled: %+v", v)
			}
		default:
			t.Errorf("unexpected entry type %T", e)
		}
	}
	if !fullSeen || !sanitizedSeen {
		t.Errorf("expected one full and one sanitized entry, full=%v sanitized=%v", fullSeen, sanitizedSeen)
	}
}

func TestListRecentChanges(t *testing.T) {
	svc, repo, _ := newTestService()
	ana := memberPrincipal(svc, "user-1")

	offset := 0
	if _, err := svc.ListOwn(context.Background(), ana, ListQuery{Offset: &offset}); err != nil {
		t.Fatalf("ListOwn recent: %v", err)
	}
	if repo.lastSince != "2024-03-11T11:40" {
		t.Errorf("since = %q, want 2024-03-11T11:40", repo.lastSince)
	}
	if repo.lastLimit != recentPageSize {
		t.Errorf("limit = %d, want %d", repo.lastLimit, recentPageSize)
	}

	offset = 10
	if _, err := svc.ListOwn(context.Background(), ana, ListQuery{Offset: &offset}); err != nil {
		t.Fatalf("ListOwn recent page 2: %v", err)
	}
	if repo.lastOffset != 10 {
		t.Errorf("offset = %d, want 10", repo.lastOffset)
	}
}

func TestListQueriesValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ana := memberPrincipal(svc, "user-1")

	_, err := svc.ListOwn(context.Background(), ana, ListQuery{Dates: []string{"12-03-2024"}})
	if code := apiCode(t, err); code != utils.ErrInvalidQuery {
		t.Fatalf("code = %q, want invalid_query", code)
	}

	_, err = svc.ListOwn(context.Background(), ana, ListQuery{Dates: []string{"2024-03-14", "2024-03-12"}})
	if code := apiCode(t, err); code != utils.ErrInvalidQuery {
		t.Fatalf("inverted range: code = %q, want invalid_query", code)
	}
}

func TestListAllRequiresAdmin(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ListAll(context.Background(), memberPrincipal(svc, "user-1"), ListQuery{})
	if code := apiCode(t, err); code != utils.ErrUnauthorized {
		t.Fatalf("code = %q, want unauthorized", code)
	}

	if _, err := svc.ListAll(context.Background(), memberPrincipal(svc, "admin-1"), ListQuery{}); err != nil {
		t.Fatalf("admin ListAll: %v", err)
	}
}

func TestGetByIDsScoping(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.reservations = []models.Reservation{
		{ID: "mine", Type: models.ReservationSingle, Datetime: "2024-03-11T10:00", Duration: 90, Court: "court-1", Owner: "user-1", Status: models.StatusApproved},
		{ID: "foreign", Type: models.ReservationSingle, Datetime: "2024-03-11T14:00", Duration: 90, Court: "court-1", Owner: "user-2", Status: models.StatusApproved},
	}

	got, err := svc.GetByIDs(context.Background(), memberPrincipal(svc, "user-1"), []string{"mine"})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].ID != "mine" {
		t.Fatalf("got %+v, want mine", got)
	}

	_, err = svc.GetByIDs(context.Background(), memberPrincipal(svc, "user-1"), []string{"foreign"})
	if code := apiCode(t, err); code != utils.ErrUnauthorized {
		t.Fatalf("code = %q, want unauthorized", code)
	}

	if _, err := svc.GetByIDs(context.Background(), memberPrincipal(svc, "admin-1"), []string{"mine", "foreign"}); err != nil {
		t.Fatalf("admin GetByIDs: %v", err)
	}
}
