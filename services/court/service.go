package court

import (
	"context"
	"time"

	courtRepo "courtside/database/repository/court"
	"courtside/models"
	"courtside/services/auth"
	"courtside/services/schedule"
	"courtside/utils"
)

// DefaultCourtService implements CourtService on the Mongo repository.
type DefaultCourtService struct {
	Repo courtRepo.CourtRepository

	now func() time.Time
}

// NewDefaultCourtService constructs the court catalog service.
func NewDefaultCourtService(repo courtRepo.CourtRepository) *DefaultCourtService {
	return &DefaultCourtService{Repo: repo, now: time.Now}
}

func (s *DefaultCourtService) GetByID(ctx context.Context, actor auth.Principal, id string) (*models.Court, error) {
	if !actor.IsLoggedIn() {
		return nil, nil
	}
	court, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if court == nil {
		return nil, utils.NewAPIError(utils.ErrResourceNotFound, map[string]any{"resource": "court"})
	}
	return court, nil
}

func (s *DefaultCourtService) GetAll(ctx context.Context, actor auth.Principal) ([]models.Court, error) {
	if !actor.IsLoggedIn() {
		return nil, nil
	}
	return s.Repo.GetAll(ctx)
}

func (s *DefaultCourtService) Create(ctx context.Context, actor auth.Principal, court *models.Court) (*models.Court, error) {
	if !actor.IsLoggedIn() {
		return nil, nil
	}
	if !actor.IsAdmin() {
		return nil, utils.NewAPIError(utils.ErrUnauthorized, nil)
	}
	if err := court.Validate(); err != nil {
		return nil, utils.NewAPIError(utils.ErrInvalidData, map[string]any{"details": err.Error()})
	}
	if err := s.Repo.Create(ctx, court); err != nil {
		return nil, err
	}
	return court, nil
}

func (s *DefaultCourtService) Update(ctx context.Context, actor auth.Principal, court *models.Court) (*models.Court, error) {
	if !actor.IsLoggedIn() {
		return nil, nil
	}
	if !actor.IsAdmin() {
		return nil, utils.NewAPIError(utils.ErrUnauthorized, nil)
	}

	existing, err := s.Repo.GetByID(ctx, court.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NewAPIError(utils.ErrResourceNotFound, map[string]any{"resource": "court"})
	}

	if err := court.Validate(); err != nil {
		return nil, utils.NewAPIError(utils.ErrInvalidData, map[string]any{"details": err.Error()})
	}

	s.PruneExpiredExceptions(court)

	if err := s.Repo.Update(ctx, court); err != nil {
		return nil, err
	}
	return court, nil
}

func (s *DefaultCourtService) Delete(ctx context.Context, actor auth.Principal, id string) error {
	if !actor.IsLoggedIn() {
		return nil
	}
	if !actor.IsAdmin() {
		return utils.NewAPIError(utils.ErrUnauthorized, nil)
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return utils.NewAPIError(utils.ErrResourceNotFound, map[string]any{"resource": "court"})
	}

	return s.Repo.Delete(ctx, id)
}

// PruneExpiredExceptions drops datesNotApplied entries before today.
// An exception for a past date can never affect scheduling again, so
// the write path sheds them on every court update.
func (s *DefaultCourtService) PruneExpiredExceptions(court *models.Court) {
	today := schedule.DateOf(schedule.FormatDatetime(s.now()))
	for i := range court.ReservationsInfo.ReservedTimes {
		block := &court.ReservationsInfo.ReservedTimes[i]
		if len(block.DatesNotApplied) == 0 {
			continue
		}
		kept := block.DatesNotApplied[:0]
		for _, d := range block.DatesNotApplied {
			if d >= today {
				kept = append(kept, d)
			}
		}
		block.DatesNotApplied = kept
	}
}
