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

// SendDetail is the per-recipient outcome of an immediate bulk send.
type SendDetail struct {
	Recipient     string               `json:"recipient"`
	Address       string               `json:"address"`
	RecipientType entity.RecipientType `json:"recipient_type"`
	Status        string               `json:"status"`
	Error         string               `json:"error,omitempty"`
}

// SendSummary aggregates one bulk send.
type SendSummary struct {
	Sent    int          `json:"sent"`
	Failed  int          `json:"failed"`
	Total   int          `json:"total"`
	Details []SendDetail `json:"details"`
}

// Notifier performs immediate bulk sends for a manifest. Unlike the
// rule-driven planner, the immediate path always targets both the
// passenger and the next of kin for every roster row.
type Notifier struct {
	manifests repository.ManifestRepository
	smsTpls   repository.SMSTemplateRepository
	logs      repository.DeliveryLogRepository
	sms       repository.SMSGateway
	limiter   *rate.Limiter
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewNotifier creates a new immediate-send notifier
func NewNotifier(
	manifests repository.ManifestRepository,
	smsTpls repository.SMSTemplateRepository,
	logs repository.DeliveryLogRepository,
	sms repository.SMSGateway,
	ratePerSec float64,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *Notifier {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	return &Notifier{
		manifests: manifests,
		smsTpls:   smsTpls,
		logs:      logs,
		sms:       sms,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSec), 1),
		logger:    logger,
		metrics:   metrics,
	}
}

// SendManifestNow sends one SMS to every passenger and every next of
// kin on the manifest, using the active stored template for each
// recipient type when one exists. Partial failure is reported per
// recipient, never as an aborted run.
func (n *Notifier) SendManifestNow(ctx context.Context, manifestID uint) (*SendSummary, error) {
	manifest, err := n.manifests.GetByID(ctx, manifestID)
	if err != nil {
		return nil, err
	}
	passengers, err := n.manifests.Passengers(ctx, manifestID)
	if err != nil {
		return nil, err
	}

	tpls := map[entity.RecipientType]Template{
		entity.RecipientPassenger: n.storedOrDefault(ctx, entity.TemplatePassenger, entity.RecipientPassenger),
		entity.RecipientNextOfKin: n.storedOrDefault(ctx, entity.TemplateNextOfKin, entity.RecipientNextOfKin),
	}

	summary := &SendSummary{}
	for _, p := range passengers {
		for _, rt := range []entity.RecipientType{entity.RecipientPassenger, entity.RecipientNextOfKin} {
			if err := n.limiter.Wait(ctx); err != nil {
				return summary, err
			}
			n.sendOne(ctx, manifest, p, rt, tpls[rt], summary)
		}
	}

	n.logger.Info("Immediate send finished",
		"manifest", manifest.Reference, "sent", summary.Sent, "failed", summary.Failed)
	return summary, nil
}

func (n *Notifier) storedOrDefault(ctx context.Context, tt entity.TemplateType, rt entity.RecipientType) Template {
	stored, err := n.smsTpls.GetActiveByType(ctx, tt)
	if err != nil {
		n.logger.Error("Failed to load template, using default", "type", tt, "error", err)
	}
	if stored != nil && stored.Body != "" {
		return Template{Body: stored.Body}
	}
	return DefaultTemplate(rt, entity.ChannelSMS)
}

func (n *Notifier) sendOne(
	ctx context.Context,
	manifest *entity.Manifest,
	p *entity.Passenger,
	rt entity.RecipientType,
	tpl Template,
	summary *SendSummary,
) {
	summary.Total++

	name := p.FullName
	if rt == entity.RecipientNextOfKin {
		name = p.NextOfKinName
	}
	phone, _ := p.ContactFor(rt)

	detail := SendDetail{Recipient: name, Address: phone, RecipientType: rt}

	rendered, err := Render(tpl, MessageVars(p, manifest, manifest.Route))
	if err == nil {
		_, err = n.sms.SendSMS(ctx, phone, rendered.Body)
	}

	status := entity.DeliverySent
	if err != nil {
		status = entity.DeliveryFailed
		detail.Status = status
		detail.Error = err.Error()
		summary.Failed++
		n.metrics.ErrorsCount.WithLabelValues("immediate_send").Inc()
	} else {
		detail.Status = status
		summary.Sent++
		n.metrics.MessagesSent.WithLabelValues(string(entity.ChannelSMS), n.sms.Name()).Inc()
	}
	summary.Details = append(summary.Details, detail)

	log := &entity.DeliveryLog{
		ManifestRef:   manifest.Reference,
		PassengerID:   p.ID,
		RecipientType: rt,
		Channel:       entity.ChannelSMS,
		Provider:      n.sms.Name(),
		Address:       phone,
		Content:       rendered.Body,
		Status:        status,
		SentAt:        time.Now().UTC(),
	}
	if err != nil {
		log.ErrorMessage = err.Error()
	}
	if logErr := n.logs.Append(ctx, log); logErr != nil {
		n.logger.Error("Failed to append delivery log", "manifest", manifest.Reference, "error", logErr)
	}
}
