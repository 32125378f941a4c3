package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusTransitions(t *testing.T) {
	tests := []struct {
		from JobStatus
		to   JobStatus
		want bool
	}{
		{JobPending, JobSent, true},
		{JobPending, JobFailed, true},
		{JobPending, JobCancelled, true},
		{JobSent, JobCancelled, false},
		{JobSent, JobFailed, false},
		{JobFailed, JobPending, false},
		{JobCancelled, JobSent, false},
		{JobPending, JobPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, JobPending.Terminal())
	assert.True(t, JobSent.Terminal())
	assert.True(t, JobFailed.Terminal())
	assert.True(t, JobCancelled.Terminal())
}

func TestJobStatusValid(t *testing.T) {
	assert.True(t, JobPending.Valid())
	assert.True(t, JobCancelled.Valid())
	assert.False(t, JobStatus("queued").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestJobAddress(t *testing.T) {
	j := &ScheduledJob{Channel: ChannelSMS, Phone: "+2348031110001", Email: "ada@example.com"}
	assert.Equal(t, "+2348031110001", j.Address())

	j.Channel = ChannelEmail
	assert.Equal(t, "ada@example.com", j.Address())
}
