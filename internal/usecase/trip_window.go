package usecase

import (
	"fmt"
	"time"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
)

// TripWindow is the resolved pair of absolute trip timestamps. Both
// are UTC regardless of the zone the inputs were interpreted in.
type TripWindow struct {
	DepartureAt time.Time
	ArrivalAt   time.Time
}

// TripWindowResolver turns a manifest's calendar date, optional
// time-of-day and route duration into absolute timestamps. Inputs are
// interpreted in the configured zone and outputs normalized to UTC, so
// persisted schedule times never depend on host-local time.
type TripWindowResolver struct {
	loc *time.Location
}

// NewTripWindowResolver creates a resolver for the given IANA zone
// name. An empty name means UTC.
func NewTripWindowResolver(tzName string) (*TripWindowResolver, error) {
	if tzName == "" {
		tzName = "UTC"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule timezone %q: %w", tzName, err)
	}
	return &TripWindowResolver{loc: loc}, nil
}

// Location returns the zone trip inputs are interpreted in.
func (r *TripWindowResolver) Location() *time.Location {
	return r.loc
}

// Resolve computes the trip window. tripDate is YYYY-MM-DD and
// required; departureTime is HH:MM or HH:MM:SS and defaults to
// midnight; durationHours must be non-negative. The arrival is exactly
// departure + duration, fractional hours allowed.
func (r *TripWindowResolver) Resolve(tripDate, departureTime string, durationHours float64) (TripWindow, error) {
	if tripDate == "" {
		return TripWindow{}, fmt.Errorf("%w: trip date is required", entity.ErrInvalidTripWindow)
	}
	if durationHours < 0 {
		return TripWindow{}, fmt.Errorf("%w: duration %.2fh is negative", entity.ErrInvalidTripWindow, durationHours)
	}

	day, err := time.ParseInLocation("2006-01-02", tripDate, r.loc)
	if err != nil {
		return TripWindow{}, fmt.Errorf("%w: unparseable trip date %q", entity.ErrInvalidTripWindow, tripDate)
	}

	departure := day
	if departureTime != "" {
		tod, err := parseTimeOfDay(departureTime)
		if err != nil {
			return TripWindow{}, fmt.Errorf("%w: unparseable departure time %q", entity.ErrInvalidTripWindow, departureTime)
		}
		departure = day.Add(tod)
	}

	arrival := departure.Add(time.Duration(durationHours * float64(time.Hour)))

	return TripWindow{
		DepartureAt: departure.UTC(),
		ArrivalAt:   arrival.UTC(),
	}, nil
}

func parseTimeOfDay(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("unsupported time of day %q", s)
}
