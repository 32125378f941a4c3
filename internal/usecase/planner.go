package usecase

import (
	"context"
	"fmt"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
	"github.com/Donelpee/travelcover-insurance/pkg/metrics"
)

// Planner produces the scheduled jobs for one manifest: the cross
// product of passengers and matching rules, each with a resolved send
// time and rendered content. One planning run is a pure computation
// followed by exactly one transactional batch insert.
type Planner struct {
	resolver         *TripWindowResolver
	jobs             repository.JobRepository
	logger           logger.Logger
	metrics          *metrics.Metrics
	defaultTripHours float64
}

// NewPlanner creates a new schedule planner
func NewPlanner(
	resolver *TripWindowResolver,
	jobs repository.JobRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
	defaultTripHours float64,
) *Planner {
	return &Planner{
		resolver:         resolver,
		jobs:             jobs,
		logger:           logger,
		metrics:          metrics,
		defaultTripHours: defaultTripHours,
	}
}

// routeDuration is the single place the default trip duration applies:
// routes without a positive recorded duration get the configured
// fallback.
func (pl *Planner) routeDuration(route *entity.Route) float64 {
	if route != nil && route.DurationHours > 0 {
		return route.DurationHours
	}
	return pl.defaultTripHours
}

// PlanManifest computes and persists the job batch for one manifest.
// rules must be a snapshot read once before the call; the planner never
// re-queries them. It returns the computed jobs and the number actually
// inserted (re-planning skips jobs whose natural key already exists).
// Any trip-window or render error aborts the whole run: no passenger
// is scheduled unless all are.
func (pl *Planner) PlanManifest(
	ctx context.Context,
	manifest *entity.Manifest,
	passengers []*entity.Passenger,
	route *entity.Route,
	rules []*entity.ScheduleRule,
) ([]*entity.ScheduledJob, int, error) {
	window, err := pl.resolver.Resolve(manifest.TripDate, manifest.DepartureTime, pl.routeDuration(route))
	if err != nil {
		return nil, 0, err
	}

	var jobs []*entity.ScheduledJob
	for _, rule := range rules {
		if !rule.Active || !rule.AppliesTo(manifest.ID) {
			continue
		}
		if !rule.Trigger.Valid() {
			pl.logger.Warn("Skipping rule with unknown trigger", "rule", rule.ID, "trigger", rule.Trigger)
			continue
		}

		anchor := window.DepartureAt
		if rule.Trigger.AnchorsOnArrival() {
			anchor = window.ArrivalAt
		}
		sendAt := anchor
		switch rule.Trigger.Sign() {
		case -1:
			sendAt = anchor.Add(-rule.Offset())
		case 1:
			sendAt = anchor.Add(rule.Offset())
		}

		tpl := pl.ruleTemplate(rule)

		for _, p := range passengers {
			phone, email := p.ContactFor(rule.Recipient)
			if rule.Channel == entity.ChannelEmail && email == "" {
				pl.logger.Warn("Skipping email job, recipient has no address",
					"manifest", manifest.Reference, "passenger", p.ID, "recipient", rule.Recipient)
				continue
			}

			rendered, err := Render(tpl, MessageVars(p, manifest, route))
			if err != nil {
				return nil, 0, fmt.Errorf("rule %d, passenger %d: %w", rule.ID, p.ID, err)
			}

			jobs = append(jobs, &entity.ScheduledJob{
				ManifestID:    manifest.ID,
				PassengerID:   p.ID,
				RuleID:        rule.ID,
				RecipientType: rule.Recipient,
				Channel:       rule.Channel,
				Phone:         phone,
				Email:         email,
				Subject:       rendered.Subject,
				Body:          rendered.Body,
				ScheduledAt:   sendAt,
				Status:        entity.JobPending,
			})
		}
	}

	inserted, err := pl.jobs.CreateBatch(ctx, jobs)
	if err != nil {
		pl.metrics.ErrorsCount.WithLabelValues("plan_manifest").Inc()
		return nil, 0, err
	}

	pl.metrics.JobsScheduled.Add(float64(inserted))
	pl.logger.Info("Manifest planned",
		"manifest", manifest.Reference,
		"passengers", len(passengers),
		"computed", len(jobs),
		"inserted", inserted)

	return jobs, inserted, nil
}

// ruleTemplate picks the rule's linked template for its channel, or
// the canonical default for its recipient type.
func (pl *Planner) ruleTemplate(rule *entity.ScheduleRule) Template {
	switch rule.Channel {
	case entity.ChannelEmail:
		if rule.EmailTemplate != nil && rule.EmailTemplate.Active {
			return Template{Subject: rule.EmailTemplate.Subject, Body: rule.EmailTemplate.BodyHTML}
		}
	default:
		if rule.SMSTemplate != nil && rule.SMSTemplate.Active {
			return Template{Body: rule.SMSTemplate.Body}
		}
	}
	return DefaultTemplate(rule.Recipient, rule.Channel)
}
