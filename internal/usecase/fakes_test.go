package usecase

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/pkg/metrics"
)

// Prometheus collectors register globally, so the whole package shares
// one instance.
var testMetrics = metrics.NewMetrics("test")

// fakeJobRepo is an in-memory JobRepository with the same natural-key
// and compare-and-swap semantics as the real store.
type fakeJobRepo struct {
	mu     sync.Mutex
	nextID uint
	jobs   []*entity.ScheduledJob

	createErr error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{nextID: 1}
}

func (f *fakeJobRepo) CreateBatch(ctx context.Context, jobs []*entity.ScheduledJob) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}

	inserted := 0
	for _, j := range jobs {
		if f.lookupLocked(j.ManifestID, j.PassengerID, j.RuleID, j.RecipientType) != nil {
			continue
		}
		clone := *j
		clone.ID = f.nextID
		f.nextID++
		f.jobs = append(f.jobs, &clone)
		inserted++
	}
	return inserted, nil
}

func (f *fakeJobRepo) lookupLocked(manifestID, passengerID, ruleID uint, rt entity.RecipientType) *entity.ScheduledJob {
	for _, j := range f.jobs {
		if j.ManifestID == manifestID && j.PassengerID == passengerID && j.RuleID == ruleID && j.RecipientType == rt {
			return j
		}
	}
	return nil
}

func (f *fakeJobRepo) FetchDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.ScheduledJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var due []*entity.ScheduledJob
	for _, j := range f.jobs {
		if j.Status == entity.JobPending && !j.ScheduledAt.After(now) {
			clone := *j
			due = append(due, &clone)
			if len(due) == limit {
				break
			}
		}
	}
	return due, nil
}

func (f *fakeJobRepo) MarkSent(ctx context.Context, id uint, at time.Time) (bool, error) {
	return f.cas(id, entity.JobSent, "")
}

func (f *fakeJobRepo) MarkFailed(ctx context.Context, id uint, reason string) (bool, error) {
	return f.cas(id, entity.JobFailed, reason)
}

func (f *fakeJobRepo) cas(id uint, next entity.JobStatus, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.ID != id {
			continue
		}
		if j.Status != entity.JobPending {
			return false, nil
		}
		j.Status = next
		j.ErrorMessage = reason
		return true, nil
	}
	return false, nil
}

func (f *fakeJobRepo) Cancel(ctx context.Context, id uint) error {
	updated, err := f.cas(id, entity.JobCancelled, "")
	if err != nil {
		return err
	}
	if !updated {
		return entity.ErrInvalidTransition
	}
	return nil
}

func (f *fakeJobRepo) CancelPendingByManifest(ctx context.Context, manifestID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, j := range f.jobs {
		if j.ManifestID == manifestID && j.Status == entity.JobPending {
			j.Status = entity.JobCancelled
			n++
		}
	}
	return n, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id uint) (*entity.ScheduledJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.ID == id {
			clone := *j
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJobRepo) List(ctx context.Context, status entity.JobStatus, manifestID uint, limit, offset int) ([]*entity.ScheduledJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ScheduledJob
	for _, j := range f.jobs {
		if status != "" && j.Status != status {
			continue
		}
		if manifestID != 0 && j.ManifestID != manifestID {
			continue
		}
		clone := *j
		out = append(out, &clone)
	}
	return out, nil
}

// fakeSMSGateway records sends and can be told to fail for specific
// destinations.
type fakeSMSGateway struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (f *fakeSMSGateway) SendSMS(ctx context.Context, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[to]; ok {
		return "", err
	}
	f.sent = append(f.sent, to)
	return "sms-msg-id", nil
}

func (f *fakeSMSGateway) Name() string { return "fake-sms" }

type fakeEmailGateway struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmailGateway) SendEmail(ctx context.Context, to, subject, htmlBody string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return "email-msg-id", nil
}

func (f *fakeEmailGateway) Name() string { return "fake-email" }

type fakeDeliveryLogRepo struct {
	mu   sync.Mutex
	logs []*entity.DeliveryLog
}

func (f *fakeDeliveryLogRepo) Append(ctx context.Context, log *entity.DeliveryLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeDeliveryLogRepo) Report(ctx context.Context, since time.Time) (*entity.DeliveryReport, error) {
	return &entity.DeliveryReport{}, nil
}
