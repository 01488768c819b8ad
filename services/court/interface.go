// Package court manages the court catalog: admin CRUD over courts and
// their embedded blackout blocks, read access for members, and pruning
// of expired blackout exception dates.
package court

import (
	"context"

	"courtside/models"
	"courtside/services/auth"
)

// CourtService manages the court catalog.
//
// Reads are available to any authenticated user; writes are reserved
// for administrators. An absent principal makes every operation return
// without effect, mirroring the reservation lifecycle.
type CourtService interface {
	GetByID(ctx context.Context, actor auth.Principal, id string) (*models.Court, error)
	GetAll(ctx context.Context, actor auth.Principal) ([]models.Court, error)
	Create(ctx context.Context, actor auth.Principal, court *models.Court) (*models.Court, error)
	// Update replaces the court document. Expired blackout exception
	// dates are pruned before the write so datesNotApplied lists never
	// accumulate stale history.
	Update(ctx context.Context, actor auth.Principal, court *models.Court) (*models.Court, error)
	Delete(ctx context.Context, actor auth.Principal, id string) error
}
