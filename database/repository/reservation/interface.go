package reservationRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"courtside/database"
	"courtside/models"
	"courtside/utils"
)

// ReservationRepository provides access to stored reservations.
//
// Date parameters are local YYYY-MM-DD strings; range queries compare the
// stored datetime strings lexicographically, which is equivalent to
// chronological order for the zero-padded local format.
type ReservationRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.Reservation, error)
	// GetByCourtAndDate returns every reservation on the court whose
	// datetime falls on the given calendar date.
	GetByCourtAndDate(ctx context.Context, courtID, date string) ([]models.Reservation, error)
	// GetByDateRange returns reservations between from and to inclusive.
	// When owner or participant is non-empty the result is scoped to
	// reservations owned by that user id or listing that participant
	// name; participants are recorded by name, not id.
	GetByDateRange(ctx context.Context, from, to, owner, participant string) ([]models.Reservation, error)
	// GetRecent returns reservations with datetime at or after since,
	// newest first, paginated by offset. Scoped to ownerID when non-empty.
	GetRecent(ctx context.Context, since, ownerID string, offset, limit int) ([]models.Reservation, error)
	Create(ctx context.Context, reservation *models.Reservation) error
	Update(ctx context.Context, reservation *models.Reservation) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	repo := &mongoReservationRepo{
		coll: database.DB().Collection("reservations"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("reservation repo: failed to ensure indexes", zap.Error(err))
	}
	return repo
}
