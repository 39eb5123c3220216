package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func TestResolveAllTime(t *testing.T) {
	r, err := Resolve("2024-01-01", "2024-02-01", true, now)
	require.NoError(t, err)

	assert.True(t, r.AllTime)
	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC), r.To)
}

func TestResolveDefaultWindow(t *testing.T) {
	r, err := Resolve("", "", false, now)
	require.NoError(t, err)

	assert.False(t, r.AllTime)
	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC), r.To)
}

func TestResolveExplicitRange(t *testing.T) {
	r, err := Resolve("2024-01-01", "2024-01-31", false, now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.From)
	// The to day is included in full.
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), r.To)
}

func TestResolveMissingFrom(t *testing.T) {
	r, err := Resolve("", "2024-03-10", false, now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC), r.To)
}

func TestResolveMissingTo(t *testing.T) {
	r, err := Resolve("2024-03-01", "", false, now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC), r.To)
}

func TestResolveMalformedDates(t *testing.T) {
	_, err := Resolve("not-a-date", "", false, now)
	assert.Error(t, err)

	_, err = Resolve("", "2024-13-45", false, now)
	assert.Error(t, err)

	_, err = Resolve("01/02/2024", "2024-03-01", false, now)
	assert.Error(t, err)
}

func TestResolveInvertedRange(t *testing.T) {
	_, err := Resolve("2024-03-10", "2024-03-01", false, now)
	assert.Error(t, err)
}
