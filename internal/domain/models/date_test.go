package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	instant := time.Date(2026, 3, 9, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), DateOf(instant, loc))
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), DateOf(instant, nil))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate(" 2026-02-28 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", FormatDate(date))

	for _, bad := range []string{"", "28/02/2026", "2026-02-30"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestWindowStart(t *testing.T) {
	end := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), WindowStart(end, 6))
	assert.Equal(t, end, WindowStart(end, 1))
}
