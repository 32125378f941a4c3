package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
	"github.com/Donelpee/travelcover-insurance/pkg/utils"
)

// PassengerDraft is one extracted roster row as captured, before
// persistence. Confidence is the extraction score (0-100).
type PassengerDraft struct {
	FullName       string `json:"full_name" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	Email          string `json:"email"`
	NextOfKinName  string `json:"next_of_kin_name" binding:"required"`
	NextOfKinPhone string `json:"next_of_kin_phone" binding:"required"`
	NextOfKinEmail string `json:"next_of_kin_email"`
	Confidence     int    `json:"confidence"`
}

// CaptureInput is the manifest-save request: trip header plus the
// passenger batch.
type CaptureInput struct {
	CompanyID     uint             `json:"company_id" binding:"required"`
	RouteID       uint             `json:"route_id" binding:"required"`
	TripDate      string           `json:"trip_date" binding:"required"`
	DepartureTime string           `json:"departure_time"`
	ImageURL      string           `json:"image_url"`
	Passengers    []PassengerDraft `json:"passengers" binding:"required,min=1"`
}

// ManifestService owns the manifest-save workflow: persist the roster,
// snapshot the active rules, and hand everything to the planner.
type ManifestService struct {
	manifests repository.ManifestRepository
	routes    repository.RouteRepository
	rules     repository.RuleRepository
	jobs      repository.JobRepository
	planner   *Planner
	logger    logger.Logger
}

// NewManifestService creates a new manifest service
func NewManifestService(
	manifests repository.ManifestRepository,
	routes repository.RouteRepository,
	rules repository.RuleRepository,
	jobs repository.JobRepository,
	planner *Planner,
	logger logger.Logger,
) *ManifestService {
	return &ManifestService{
		manifests: manifests,
		routes:    routes,
		rules:     rules,
		jobs:      jobs,
		planner:   planner,
		logger:    logger,
	}
}

// Capture saves a manifest with its passengers and schedules its
// notifications. The roster insert and the job batch are each atomic;
// a planning failure leaves the saved manifest without jobs, and the
// error tells the caller to retry scheduling.
func (s *ManifestService) Capture(ctx context.Context, input CaptureInput) (*entity.Manifest, int, error) {
	route, err := s.routes.GetByID(ctx, input.RouteID)
	if err != nil {
		return nil, 0, fmt.Errorf("route %d: %w", input.RouteID, err)
	}
	if route.CompanyID != input.CompanyID {
		return nil, 0, fmt.Errorf("route %d does not belong to company %d", input.RouteID, input.CompanyID)
	}

	passengers := make([]*entity.Passenger, 0, len(input.Passengers))
	for i, draft := range input.Passengers {
		phone, err := utils.NormalizeE164(draft.PhoneNumber)
		if err != nil {
			return nil, 0, fmt.Errorf("passenger %d: %w", i+1, err)
		}
		nokPhone, err := utils.NormalizeE164(draft.NextOfKinPhone)
		if err != nil {
			return nil, 0, fmt.Errorf("passenger %d next of kin: %w", i+1, err)
		}
		passengers = append(passengers, &entity.Passenger{
			FullName:       strings.TrimSpace(draft.FullName),
			PhoneNumber:    phone,
			Email:          strings.TrimSpace(draft.Email),
			NextOfKinName:  strings.TrimSpace(draft.NextOfKinName),
			NextOfKinPhone: nokPhone,
			NextOfKinEmail: strings.TrimSpace(draft.NextOfKinEmail),
			Confidence:     draft.Confidence,
		})
	}

	manifest := &entity.Manifest{
		Reference:     newManifestReference(),
		CompanyID:     input.CompanyID,
		RouteID:       input.RouteID,
		TripDate:      input.TripDate,
		DepartureTime: input.DepartureTime,
		ImageURL:      input.ImageURL,
	}

	if err := s.manifests.CreateWithPassengers(ctx, manifest, passengers); err != nil {
		return nil, 0, fmt.Errorf("failed to save manifest: %w", err)
	}
	manifest.Route = route

	// One consistent rule snapshot for the whole planning run.
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return manifest, 0, fmt.Errorf("failed to load schedule rules: %w", err)
	}

	_, inserted, err := s.planner.PlanManifest(ctx, manifest, passengers, route, rules)
	if err != nil {
		return manifest, 0, err
	}

	return manifest, inserted, nil
}

// Replan recomputes the job batch for an existing manifest. Thanks to
// the natural-key upsert this is safe to call repeatedly.
func (s *ManifestService) Replan(ctx context.Context, manifestID uint) (int, error) {
	manifest, err := s.manifests.GetByID(ctx, manifestID)
	if err != nil {
		return 0, err
	}
	passengers, err := s.manifests.Passengers(ctx, manifestID)
	if err != nil {
		return 0, err
	}
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	_, inserted, err := s.planner.PlanManifest(ctx, manifest, passengers, manifest.Route, rules)
	return inserted, err
}

// Delete soft-deletes the manifest, cascading to passengers and
// cancelling every still-pending job.
func (s *ManifestService) Delete(ctx context.Context, manifestID uint) error {
	cancelled, err := s.jobs.CancelPendingByManifest(ctx, manifestID)
	if err != nil {
		return err
	}
	if err := s.manifests.Delete(ctx, manifestID); err != nil {
		return err
	}
	s.logger.Info("Manifest deleted", "manifest", manifestID, "jobsCancelled", cancelled)
	return nil
}

func newManifestReference() string {
	return "MAN-" + strings.ToUpper(uuid.NewString()[:8])
}
