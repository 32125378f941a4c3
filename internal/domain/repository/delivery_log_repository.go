package repository

import (
	"context"
	"time"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
)

// DeliveryLogRepository defines the append-only send audit log.
type DeliveryLogRepository interface {
	Append(ctx context.Context, log *entity.DeliveryLog) error
	// Report aggregates deliveries since the cutoff, grouped by
	// channel and status.
	Report(ctx context.Context, since time.Time) (*entity.DeliveryReport, error)
}
