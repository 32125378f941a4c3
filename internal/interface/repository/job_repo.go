package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
)

// GormJobRepository implements the JobRepository interface. All status
// transitions are compare-and-swap updates guarded on the pending
// state, so a cancel racing the dispatcher resolves atomically in the
// database.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GORM job repository
func NewGormJobRepository(db *gorm.DB) repository.JobRepository {
	return &GormJobRepository{db: db}
}

// CreateBatch inserts the whole planning output in one transaction.
// Conflicts on the natural key (manifest, passenger, rule, recipient
// type) are skipped, which makes re-planning a manifest idempotent.
func (r *GormJobRepository) CreateBatch(ctx context.Context, jobs []*entity.ScheduledJob) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "manifest_id"},
				{Name: "passenger_id"},
				{Name: "rule_id"},
				{Name: "recipient_type"},
			},
			DoNothing: true,
		}).Create(&jobs)
		if res.Error != nil {
			return res.Error
		}
		inserted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: attempted %d records: %v", entity.ErrSchedulingFailed, len(jobs), err)
	}
	return int(inserted), nil
}

func (r *GormJobRepository) FetchDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.ScheduledJob, error) {
	var jobs []*entity.ScheduledJob
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.JobPending, now.UTC()).
		Order("scheduled_at").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// MarkSent transitions pending -> sent. A false return means the job
// left the pending state concurrently (lost race); callers treat that
// as a no-op.
func (r *GormJobRepository) MarkSent(ctx context.Context, id uint, at time.Time) (bool, error) {
	at = at.UTC()
	res := r.db.WithContext(ctx).
		Model(&entity.ScheduledJob{}).
		Where("id = ? AND status = ?", id, entity.JobPending).
		Updates(map[string]interface{}{
			"status":  entity.JobSent,
			"sent_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormJobRepository) MarkFailed(ctx context.Context, id uint, reason string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.ScheduledJob{}).
		Where("id = ? AND status = ?", id, entity.JobPending).
		Updates(map[string]interface{}{
			"status":        entity.JobFailed,
			"error_message": reason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Cancel transitions pending -> cancelled. Cancelling a terminal job
// is an ErrInvalidTransition, never a blind update.
func (r *GormJobRepository) Cancel(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&entity.ScheduledJob{}).
		Where("id = ? AND status = ?", id, entity.JobPending).
		Update("status", entity.JobCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// Zero rows: either the job does not exist or it is no longer
	// pending. Look it up to tell the two apart.
	var job entity.ScheduledJob
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return err
	}
	return fmt.Errorf("%w: job %d is %s", entity.ErrInvalidTransition, id, job.Status)
}

func (r *GormJobRepository) CancelPendingByManifest(ctx context.Context, manifestID uint) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.ScheduledJob{}).
		Where("manifest_id = ? AND status = ?", manifestID, entity.JobPending).
		Update("status", entity.JobCancelled)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *GormJobRepository) GetByID(ctx context.Context, id uint) (*entity.ScheduledJob, error) {
	var job entity.ScheduledJob
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *GormJobRepository) List(ctx context.Context, status entity.JobStatus, manifestID uint, limit, offset int) ([]*entity.ScheduledJob, error) {
	q := r.db.WithContext(ctx).Order("scheduled_at")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if manifestID != 0 {
		q = q.Where("manifest_id = ?", manifestID)
	}
	var jobs []*entity.ScheduledJob
	if err := q.Limit(limit).Offset(offset).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
