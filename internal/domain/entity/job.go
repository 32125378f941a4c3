package entity

import (
	"time"
)

// Channel is the delivery channel for a message.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// JobStatus is the lifecycle state of a scheduled job. Transitions are
// one-directional: pending moves to exactly one of sent, failed or
// cancelled, all of which are terminal.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobSent      JobStatus = "sent"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// CanTransitionTo reports whether the status machine allows moving from
// s to next.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s != JobPending {
		return false
	}
	switch next {
	case JobSent, JobFailed, JobCancelled:
		return true
	}
	return false
}

// Valid reports whether s is a known status value.
func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobSent, JobFailed, JobCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobSent || s == JobFailed || s == JobCancelled
}

// ScheduledJob is one concrete schedulable send of a rendered message
// to one recipient. The (manifest, passenger, rule, recipient type)
// tuple is the natural key; re-planning a manifest upserts against it
// so a manifest is never double-scheduled.
type ScheduledJob struct {
	ID            uint
	ManifestID    uint          `gorm:"uniqueIndex:idx_job_identity"`
	PassengerID   uint          `gorm:"uniqueIndex:idx_job_identity"`
	RuleID        uint          `gorm:"uniqueIndex:idx_job_identity"`
	RecipientType RecipientType `gorm:"uniqueIndex:idx_job_identity"`
	Channel       Channel
	Phone         string
	Email         string
	Subject       string
	Body          string
	ScheduledAt   time.Time `gorm:"index"` // always UTC
	Status        JobStatus `gorm:"index;default:pending"`
	ErrorMessage  string
	SentAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Address returns the destination the job's channel delivers to.
func (j *ScheduledJob) Address() string {
	if j.Channel == ChannelEmail {
		return j.Email
	}
	return j.Phone
}
