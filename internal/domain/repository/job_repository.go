package repository

import (
	"context"
	"time"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
)

// JobRepository defines persistence for scheduled jobs and owns the
// status state machine at the storage level: every transition is a
// compare-and-swap guarded on status = pending.
type JobRepository interface {
	// CreateBatch inserts all jobs in one transaction with
	// upsert-on-conflict semantics over the natural key
	// (manifest, passenger, rule, recipient type). It returns the
	// number of rows actually inserted; rows whose natural key already
	// exists are skipped. On error nothing was persisted.
	CreateBatch(ctx context.Context, jobs []*entity.ScheduledJob) (int, error)

	// FetchDuePending returns pending jobs with scheduled_at <= now,
	// oldest first, up to limit.
	FetchDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.ScheduledJob, error)

	// MarkSent transitions pending -> sent. The boolean reports whether
	// the transition was applied; false means the job was no longer
	// pending (e.g. cancelled while sending) and the caller should
	// treat the result as a no-op.
	MarkSent(ctx context.Context, id uint, at time.Time) (bool, error)

	// MarkFailed transitions pending -> failed recording the reason.
	MarkFailed(ctx context.Context, id uint, reason string) (bool, error)

	// Cancel transitions pending -> cancelled. Cancelling a job in any
	// other state returns entity.ErrInvalidTransition and leaves the
	// job unchanged.
	Cancel(ctx context.Context, id uint) error

	// CancelPendingByManifest cancels every still-pending job of a
	// manifest (soft-delete cascade). Returns the number cancelled.
	CancelPendingByManifest(ctx context.Context, manifestID uint) (int, error)

	GetByID(ctx context.Context, id uint) (*entity.ScheduledJob, error)
	List(ctx context.Context, status entity.JobStatus, manifestID uint, limit, offset int) ([]*entity.ScheduledJob, error)
}
