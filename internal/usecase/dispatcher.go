package usecase

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
	"github.com/Donelpee/travelcover-insurance/pkg/metrics"
)

// Dispatcher executes due pending jobs: one attempt per job per pass,
// outcome recorded on the job and appended to the delivery log. Sends
// are throttled so provider rate limits are respected without the
// fixed sleeps the manual workflow used.
type Dispatcher struct {
	jobs      repository.JobRepository
	logs      repository.DeliveryLogRepository
	sms       repository.SMSGateway
	email     repository.EmailGateway
	limiter   *rate.Limiter
	logger    logger.Logger
	metrics   *metrics.Metrics
	batchSize int
}

// NewDispatcher creates a new dispatch worker
func NewDispatcher(
	jobs repository.JobRepository,
	logs repository.DeliveryLogRepository,
	sms repository.SMSGateway,
	email repository.EmailGateway,
	ratePerSec float64,
	batchSize int,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *Dispatcher {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Dispatcher{
		jobs:      jobs,
		logs:      logs,
		sms:       sms,
		email:     email,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSec), 1),
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// RunOnce performs one dispatch pass over every due pending job.
func (d *Dispatcher) RunOnce(ctx context.Context) error {
	start := time.Now()
	defer func() {
		d.metrics.DispatchDuration.Observe(time.Since(start).Seconds())
	}()

	due, err := d.jobs.FetchDuePending(ctx, time.Now().UTC(), d.batchSize)
	if err != nil {
		d.metrics.ErrorsCount.WithLabelValues("fetch_due").Inc()
		return err
	}
	if len(due) == 0 {
		return nil
	}

	d.logger.Info("Dispatching due jobs", "count", len(due))
	for _, job := range due {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
		d.dispatch(ctx, job)
	}
	return nil
}

// dispatch sends one job and records the outcome. A job cancelled
// between fetch and completion loses the compare-and-swap; that is a
// no-op here, not an error.
func (d *Dispatcher) dispatch(ctx context.Context, job *entity.ScheduledJob) {
	providerID, sendErr := d.send(ctx, job)

	if sendErr != nil {
		d.metrics.ErrorsCount.WithLabelValues("send").Inc()
		updated, err := d.jobs.MarkFailed(ctx, job.ID, sendErr.Error())
		if err != nil {
			d.logger.Error("Failed to mark job failed", "job", job.ID, "error", err)
			return
		}
		if !updated {
			d.logger.Warn("Job left pending state during send, outcome dropped", "job", job.ID)
			return
		}
		d.appendLog(ctx, job, entity.DeliveryFailed, sendErr.Error(), "")
		d.logger.Error("Job send failed", "job", job.ID, "error", sendErr)
		return
	}

	updated, err := d.jobs.MarkSent(ctx, job.ID, time.Now().UTC())
	if err != nil {
		d.logger.Error("Failed to mark job sent", "job", job.ID, "error", err)
		return
	}
	if !updated {
		// Lost the race against a cancel; the message went out but the
		// job record keeps its terminal state.
		d.logger.Warn("Job cancelled while sending", "job", job.ID)
		return
	}

	d.appendLog(ctx, job, entity.DeliverySent, "", providerID)
	d.metrics.MessagesSent.WithLabelValues(string(job.Channel), d.providerName(job.Channel)).Inc()
	d.logger.Info("Job sent", "job", job.ID, "channel", job.Channel, "to", job.Address())
}

func (d *Dispatcher) send(ctx context.Context, job *entity.ScheduledJob) (string, error) {
	if job.Channel == entity.ChannelEmail {
		return d.email.SendEmail(ctx, job.Email, job.Subject, job.Body)
	}
	return d.sms.SendSMS(ctx, job.Phone, job.Body)
}

func (d *Dispatcher) providerName(ch entity.Channel) string {
	if ch == entity.ChannelEmail {
		return d.email.Name()
	}
	return d.sms.Name()
}

func (d *Dispatcher) appendLog(ctx context.Context, job *entity.ScheduledJob, status, errMsg, providerID string) {
	log := &entity.DeliveryLog{
		PassengerID:       job.PassengerID,
		JobID:             job.ID,
		RecipientType:     job.RecipientType,
		Channel:           job.Channel,
		Provider:          d.providerName(job.Channel),
		Address:           job.Address(),
		Content:           job.Body,
		Status:            status,
		ErrorMessage:      errMsg,
		ProviderMessageID: providerID,
		SentAt:            time.Now().UTC(),
	}
	if err := d.logs.Append(ctx, log); err != nil {
		// The delivery log is an audit trail; losing one entry must not
		// fail the dispatch pass.
		d.logger.Error("Failed to append delivery log", "job", job.ID, "error", err)
	}
}
