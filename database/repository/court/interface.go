package courtRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"courtside/database"
	"courtside/models"
	"courtside/utils"
)

// CourtRepository provides access to stored courts and their embedded
// blackout blocks.
type CourtRepository interface {
	GetByID(ctx context.Context, id string) (*models.Court, error)
	GetAll(ctx context.Context) ([]models.Court, error)
	Create(ctx context.Context, court *models.Court) error
	Update(ctx context.Context, court *models.Court) error
	Delete(ctx context.Context, id string) error
}

type mongoCourtRepo struct {
	coll *mongo.Collection
}

// NewMongoCourtRepo constructs a new MongoDB CourtRepository.
func NewMongoCourtRepo() CourtRepository {
	repo := &mongoCourtRepo{
		coll: database.DB().Collection("courts"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("court repo: failed to ensure indexes", zap.Error(err))
	}
	return repo
}
