package repository

import (
	"context"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
)

// ManifestRepository defines persistence for manifests and their
// passenger rosters.
type ManifestRepository interface {
	// CreateWithPassengers persists the manifest header and its
	// passenger batch in a single transaction.
	CreateWithPassengers(ctx context.Context, manifest *entity.Manifest, passengers []*entity.Passenger) error
	// GetByID returns the manifest with company, route and passengers
	// preloaded.
	GetByID(ctx context.Context, id uint) (*entity.Manifest, error)
	GetByReference(ctx context.Context, reference string) (*entity.Manifest, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Manifest, error)
	Passengers(ctx context.Context, manifestID uint) ([]*entity.Passenger, error)
	// Delete soft-deletes the manifest and its passengers.
	Delete(ctx context.Context, id uint) error
}
