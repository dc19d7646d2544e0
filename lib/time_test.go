package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 5, 10, 4, 5, 678_000_000, time.FixedZone("TRT", 3*3600))
	assert.Equal(t, "2024-03-05T07:04:05.678Z", FormatTimestamp(ts))
	assert.Equal(t, "", FormatTimestamp(time.Time{}))
}

func TestParseTimeBound(t *testing.T) {
	from, err := ParseTimeBound("2024-01-31", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *from)

	to, err := ParseTimeBound("2024-01-31", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999_000_000, time.UTC), *to)

	exact, err := ParseTimeBound("2024-01-31T12:00:00+03:00", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC), *exact)

	none, err := ParseTimeBound(" ", false)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = ParseTimeBound("yesterday", false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
