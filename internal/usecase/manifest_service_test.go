package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
)

type fakeManifestRepo struct {
	nextID     uint
	manifests  map[uint]*entity.Manifest
	passengers map[uint][]*entity.Passenger
	deleted    []uint
}

func newFakeManifestRepo() *fakeManifestRepo {
	return &fakeManifestRepo{
		nextID:     1,
		manifests:  make(map[uint]*entity.Manifest),
		passengers: make(map[uint][]*entity.Passenger),
	}
}

func (f *fakeManifestRepo) CreateWithPassengers(ctx context.Context, manifest *entity.Manifest, passengers []*entity.Passenger) error {
	manifest.ID = f.nextID
	f.nextID++
	manifest.PassengerCount = len(passengers)
	for i, p := range passengers {
		p.ID = manifest.ID*100 + uint(i)
		p.ManifestID = manifest.ID
	}
	f.manifests[manifest.ID] = manifest
	f.passengers[manifest.ID] = passengers
	return nil
}

func (f *fakeManifestRepo) GetByID(ctx context.Context, id uint) (*entity.Manifest, error) {
	m, ok := f.manifests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeManifestRepo) GetByReference(ctx context.Context, reference string) (*entity.Manifest, error) {
	for _, m := range f.manifests {
		if m.Reference == reference {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeManifestRepo) List(ctx context.Context, limit, offset int) ([]*entity.Manifest, error) {
	var out []*entity.Manifest
	for _, m := range f.manifests {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeManifestRepo) Passengers(ctx context.Context, manifestID uint) ([]*entity.Passenger, error) {
	return f.passengers[manifestID], nil
}

func (f *fakeManifestRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.manifests[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.manifests, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRouteRepo struct {
	routes map[uint]*entity.Route
}

func (f *fakeRouteRepo) Create(ctx context.Context, route *entity.Route) error { return nil }
func (f *fakeRouteRepo) Update(ctx context.Context, route *entity.Route) error { return nil }
func (f *fakeRouteRepo) GetByID(ctx context.Context, id uint) (*entity.Route, error) {
	r, ok := f.routes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}
func (f *fakeRouteRepo) ListByCompany(ctx context.Context, companyID uint) ([]*entity.Route, error) {
	return nil, nil
}
func (f *fakeRouteRepo) Delete(ctx context.Context, id uint) error { return nil }

type fakeRuleRepo struct {
	active []*entity.ScheduleRule
}

func (f *fakeRuleRepo) Create(ctx context.Context, rule *entity.ScheduleRule) error { return nil }
func (f *fakeRuleRepo) Update(ctx context.Context, rule *entity.ScheduleRule) error { return nil }
func (f *fakeRuleRepo) GetByID(ctx context.Context, id uint) (*entity.ScheduleRule, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRuleRepo) ListActive(ctx context.Context) ([]*entity.ScheduleRule, error) {
	return f.active, nil
}
func (f *fakeRuleRepo) List(ctx context.Context) ([]*entity.ScheduleRule, error) {
	return f.active, nil
}
func (f *fakeRuleRepo) Delete(ctx context.Context, id uint) error { return nil }

func newTestManifestService(t *testing.T, jobs *fakeJobRepo, rules []*entity.ScheduleRule) (*ManifestService, *fakeManifestRepo) {
	t.Helper()
	manifests := newFakeManifestRepo()
	routes := &fakeRouteRepo{routes: map[uint]*entity.Route{
		7: {ID: 7, CompanyID: 3, DepartureLocation: "Lagos", Destination: "Abuja", DurationHours: 6,
			Company: &entity.Company{ID: 3, Name: "GreenLine Motors"}},
	}}
	svc := NewManifestService(manifests, routes, &fakeRuleRepo{active: rules}, jobs, newTestPlanner(t, jobs), logger.NewNop())
	return svc, manifests
}

func captureInput() CaptureInput {
	return CaptureInput{
		CompanyID:     3,
		RouteID:       7,
		TripDate:      "2026-03-10",
		DepartureTime: "08:00",
		Passengers: []PassengerDraft{
			{FullName: " Ada Obi ", PhoneNumber: "+234 803 111 0001", NextOfKinName: "Ngozi Obi", NextOfKinPhone: "+234 (803) 111-0002"},
			{FullName: "Bala Musa", PhoneNumber: "+2348031110003", NextOfKinName: "Amina Musa", NextOfKinPhone: "+234-803-111-0004"},
		},
	}
}

func TestCaptureSchedulesJobs(t *testing.T) {
	jobs := newFakeJobRepo()
	rules := []*entity.ScheduleRule{
		{ID: 1, Trigger: entity.TriggerBeforeTrip, OffsetMinutes: 60, Recipient: entity.RecipientPassenger, Scope: entity.ScopeAllTrips, Channel: entity.ChannelSMS, Active: true},
	}
	svc, manifests := newTestManifestService(t, jobs, rules)

	manifest, inserted, err := svc.Capture(context.Background(), captureInput())
	require.NoError(t, err)
	require.NotNil(t, manifest)

	assert.True(t, strings.HasPrefix(manifest.Reference, "MAN-"))
	assert.Len(t, manifest.Reference, 12)
	assert.Equal(t, 2, manifest.PassengerCount)
	assert.Equal(t, 2, inserted, "1 rule x 2 passengers")

	saved := manifests.passengers[manifest.ID]
	require.Len(t, saved, 2)
	assert.Equal(t, "Ada Obi", saved[0].FullName, "names are trimmed")
	assert.Equal(t, "+2348031110001", saved[0].PhoneNumber, "phones normalized to E.164")
	assert.Equal(t, "+2348031110002", saved[0].NextOfKinPhone)
}

func TestCaptureRejectsMismatchedCompany(t *testing.T) {
	svc, _ := newTestManifestService(t, newFakeJobRepo(), nil)

	input := captureInput()
	input.CompanyID = 99
	_, _, err := svc.Capture(context.Background(), input)
	assert.ErrorContains(t, err, "does not belong to company")
}

func TestCaptureRejectsBadPhone(t *testing.T) {
	jobs := newFakeJobRepo()
	svc, manifests := newTestManifestService(t, jobs, nil)

	input := captureInput()
	input.Passengers[1].PhoneNumber = "not a phone"
	_, _, err := svc.Capture(context.Background(), input)
	require.Error(t, err)
	assert.ErrorContains(t, err, "passenger 2")
	assert.Empty(t, manifests.manifests, "nothing saved")
}

func TestCaptureInvalidWindowKeepsManifest(t *testing.T) {
	jobs := newFakeJobRepo()
	rules := []*entity.ScheduleRule{
		{ID: 1, Trigger: entity.TriggerBeforeTrip, OffsetMinutes: 60, Recipient: entity.RecipientPassenger, Scope: entity.ScopeAllTrips, Channel: entity.ChannelSMS, Active: true},
	}
	svc, manifests := newTestManifestService(t, jobs, rules)

	input := captureInput()
	input.TripDate = "bogus"
	manifest, inserted, err := svc.Capture(context.Background(), input)
	assert.ErrorIs(t, err, entity.ErrInvalidTripWindow)
	assert.Zero(t, inserted)
	// The roster save succeeded; the caller can fix the date and replan.
	require.NotNil(t, manifest)
	assert.Len(t, manifests.manifests, 1)
}

func TestReplanRecoversMissedJobs(t *testing.T) {
	jobs := newFakeJobRepo()
	rules := []*entity.ScheduleRule{
		{ID: 1, Trigger: entity.TriggerBeforeTrip, OffsetMinutes: 60, Recipient: entity.RecipientPassenger, Scope: entity.ScopeAllTrips, Channel: entity.ChannelSMS, Active: true},
	}
	svc, _ := newTestManifestService(t, jobs, rules)

	manifest, inserted, err := svc.Capture(context.Background(), captureInput())
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	inserted, err = svc.Replan(context.Background(), manifest.ID)
	require.NoError(t, err)
	assert.Zero(t, inserted, "all jobs already exist")
}

func TestDeleteCancelsPendingJobs(t *testing.T) {
	jobs := newFakeJobRepo()
	rules := []*entity.ScheduleRule{
		{ID: 1, Trigger: entity.TriggerBeforeTrip, OffsetMinutes: 60, Recipient: entity.RecipientPassenger, Scope: entity.ScopeAllTrips, Channel: entity.ChannelSMS, Active: true},
	}
	svc, manifests := newTestManifestService(t, jobs, rules)

	manifest, _, err := svc.Capture(context.Background(), captureInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), manifest.ID))
	assert.Equal(t, []uint{manifest.ID}, manifests.deleted)
	for _, j := range jobs.jobs {
		assert.Equal(t, entity.JobCancelled, j.Status)
	}
}
