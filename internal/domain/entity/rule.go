package entity

import (
	"time"

	"gorm.io/gorm"
)

// TriggerType determines which trip anchor a rule's offset is applied
// to and in which direction.
type TriggerType string

const (
	// Anchored on departure.
	TriggerBeforeTrip TriggerType = "before_trip"
	TriggerTripStart  TriggerType = "trip_start" // offset ignored
	TriggerAfterStart TriggerType = "after_start"

	// Anchored on arrival.
	TriggerBeforeEnd TriggerType = "before_end"
	TriggerTripEnd   TriggerType = "trip_end" // offset ignored
	TriggerAfterTrip TriggerType = "after_trip"
)

// AnchorsOnArrival reports whether the trigger is computed from the
// arrival time rather than the departure time.
func (t TriggerType) AnchorsOnArrival() bool {
	switch t {
	case TriggerBeforeEnd, TriggerTripEnd, TriggerAfterTrip:
		return true
	}
	return false
}

// Sign returns the direction the offset is applied in: -1 before the
// anchor, +1 after it, 0 for exact-anchor triggers.
func (t TriggerType) Sign() int {
	switch t {
	case TriggerBeforeTrip, TriggerBeforeEnd:
		return -1
	case TriggerAfterStart, TriggerAfterTrip:
		return 1
	}
	return 0
}

// Valid reports whether t is one of the known trigger types.
func (t TriggerType) Valid() bool {
	switch t {
	case TriggerBeforeTrip, TriggerTripStart, TriggerAfterStart,
		TriggerBeforeEnd, TriggerTripEnd, TriggerAfterTrip:
		return true
	}
	return false
}

// RecipientType selects which contact fields of a passenger row a
// message targets.
type RecipientType string

const (
	RecipientPassenger RecipientType = "passenger"
	RecipientNextOfKin RecipientType = "next_of_kin"
)

// RuleScope controls which manifests a rule applies to.
type RuleScope string

const (
	ScopeAllTrips     RuleScope = "all"
	ScopeSpecificTrip RuleScope = "specific"
)

// ScheduleRule configures one trip-relative notification: when it fires
// (trigger + offset), to whom (exactly one recipient type), over which
// channel, and with which template. OffsetMinutes must be non-negative;
// the trigger type supplies the sign.
type ScheduleRule struct {
	ID               uint
	Name             string
	Trigger          TriggerType
	OffsetMinutes    int
	Recipient        RecipientType
	Scope            RuleScope
	TargetManifestID uint // only meaningful when Scope == specific
	Channel          Channel
	SMSTemplateID    *uint
	SMSTemplate      *SMSTemplate
	EmailTemplateID  *uint
	EmailTemplate    *EmailTemplate
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt
}

// Offset returns the rule's offset as a duration. Exact-anchor triggers
// always yield zero regardless of OffsetMinutes.
func (r *ScheduleRule) Offset() time.Duration {
	if r.Trigger.Sign() == 0 {
		return 0
	}
	return time.Duration(r.OffsetMinutes) * time.Minute
}

// AppliesTo reports whether the rule covers the given manifest.
func (r *ScheduleRule) AppliesTo(manifestID uint) bool {
	if r.Scope == ScopeSpecificTrip {
		return r.TargetManifestID == manifestID
	}
	return true
}
