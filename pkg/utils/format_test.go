package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongDate(t *testing.T) {
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Tuesday, March 10, 2026", LongDate(d))

	d = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Monday, January 5, 2026", LongDate(d))
}

func TestParseTripDate(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)

	d, err := ParseTripDate("2026-03-10", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc).Unix(), d.Unix())

	_, err = ParseTripDate("10/03/2026", loc)
	assert.Error(t, err)
}
