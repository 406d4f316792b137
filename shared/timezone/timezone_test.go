package timezone_test

import (
	"testing"
	"time"

	"furk/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	location := timezone.GetLocation()
	require.NotNil(t, location)

	now := timezone.Now()
	assert.False(t, now.IsZero())
	assert.Equal(t, location, now.Location())
}

func TestToAppTime(t *testing.T) {
	utc := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	converted := timezone.ToAppTime(utc)

	assert.Equal(t, timezone.GetLocation(), converted.Location())
	assert.True(t, converted.Equal(utc), "conversion must not shift the instant")
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02 15:04", "2025-06-01 09:30")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, "2025-06-01 09:30", timezone.Format(parsed, "2006-01-02 15:04"))
}

func TestParseInvalidValue(t *testing.T) {
	_, err := timezone.Parse("2006-01-02", "not-a-date")
	assert.Error(t, err)
}
