package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
)

type fakeSMSTemplateRepo struct {
	byType map[entity.TemplateType]*entity.SMSTemplate
}

func (f *fakeSMSTemplateRepo) Create(ctx context.Context, tpl *entity.SMSTemplate) error { return nil }
func (f *fakeSMSTemplateRepo) Update(ctx context.Context, tpl *entity.SMSTemplate) error { return nil }
func (f *fakeSMSTemplateRepo) GetByID(ctx context.Context, id uint) (*entity.SMSTemplate, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSMSTemplateRepo) GetActiveByType(ctx context.Context, t entity.TemplateType) (*entity.SMSTemplate, error) {
	return f.byType[t], nil
}
func (f *fakeSMSTemplateRepo) List(ctx context.Context, activeOnly bool) ([]*entity.SMSTemplate, error) {
	return nil, nil
}
func (f *fakeSMSTemplateRepo) Delete(ctx context.Context, id uint) error { return nil }

func seedNotifierManifest(t *testing.T) *fakeManifestRepo {
	t.Helper()
	manifests := newFakeManifestRepo()
	route := &entity.Route{DepartureLocation: "Lagos", Destination: "Abuja", Company: &entity.Company{Name: "GreenLine Motors"}}
	manifest := &entity.Manifest{Reference: "MAN-NOTIF001", TripDate: "2026-03-10", Route: route}
	err := manifests.CreateWithPassengers(context.Background(), manifest, []*entity.Passenger{
		{FullName: "Ada Obi", PhoneNumber: "+2348031110001", NextOfKinName: "Ngozi Obi", NextOfKinPhone: "+2348031110002"},
		{FullName: "Bala Musa", PhoneNumber: "+2348031110003", NextOfKinName: "Amina Musa", NextOfKinPhone: "+2348031110004"},
	})
	require.NoError(t, err)
	return manifests
}

func TestSendManifestNowTargetsBothRecipients(t *testing.T) {
	manifests := seedNotifierManifest(t)
	sms := &fakeSMSGateway{}
	logs := &fakeDeliveryLogRepo{}

	n := NewNotifier(manifests, &fakeSMSTemplateRepo{}, logs, sms, 1000, logger.NewNop(), testMetrics)
	summary, err := n.SendManifestNow(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total, "2 passengers x both recipient types")
	assert.Equal(t, 4, summary.Sent)
	assert.Zero(t, summary.Failed)
	assert.ElementsMatch(t, []string{
		"+2348031110001", "+2348031110002", "+2348031110003", "+2348031110004",
	}, sms.sent)
	assert.Len(t, logs.logs, 4)
}

func TestSendManifestNowPrefersStoredTemplate(t *testing.T) {
	manifests := seedNotifierManifest(t)
	sms := &fakeSMSGateway{}
	tpls := &fakeSMSTemplateRepo{byType: map[entity.TemplateType]*entity.SMSTemplate{
		entity.TemplatePassenger: {Body: "Stored: {passenger_name} travels {trip_date}", Active: true},
	}}
	logs := &fakeDeliveryLogRepo{}

	n := NewNotifier(manifests, tpls, logs, sms, 1000, logger.NewNop(), testMetrics)
	_, err := n.SendManifestNow(context.Background(), 1)
	require.NoError(t, err)

	var passengerLogs, kinLogs int
	for _, l := range logs.logs {
		switch l.RecipientType {
		case entity.RecipientPassenger:
			passengerLogs++
			assert.Contains(t, l.Content, "Stored: ")
			assert.Contains(t, l.Content, "Tuesday, March 10, 2026")
		case entity.RecipientNextOfKin:
			kinLogs++
			assert.NotContains(t, l.Content, "Stored: ", "kin falls back to the default body")
		}
	}
	assert.Equal(t, 2, passengerLogs)
	assert.Equal(t, 2, kinLogs)
}

func TestSendManifestNowReportsPartialFailure(t *testing.T) {
	manifests := seedNotifierManifest(t)
	sms := &fakeSMSGateway{failFor: map[string]error{"+2348031110002": errors.New("unreachable")}}
	logs := &fakeDeliveryLogRepo{}

	n := NewNotifier(manifests, &fakeSMSTemplateRepo{}, logs, sms, 1000, logger.NewNop(), testMetrics)
	summary, err := n.SendManifestNow(context.Background(), 1)
	require.NoError(t, err, "partial failure never aborts the run")

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Sent)
	assert.Equal(t, 1, summary.Failed)

	var failed *SendDetail
	for i := range summary.Details {
		if summary.Details[i].Status == entity.DeliveryFailed {
			failed = &summary.Details[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "+2348031110002", failed.Address)
	assert.Equal(t, entity.RecipientNextOfKin, failed.RecipientType)
	assert.Equal(t, "unreachable", failed.Error)
}

func TestSendManifestNowUnknownManifest(t *testing.T) {
	n := NewNotifier(newFakeManifestRepo(), &fakeSMSTemplateRepo{}, &fakeDeliveryLogRepo{}, &fakeSMSGateway{}, 1000, logger.NewNop(), testMetrics)
	_, err := n.SendManifestNow(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
