package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClockToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	c := Fixed(time.Date(2026, 7, 1, 22, 0, 0, 0, loc))

	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), c.Today())
	assert.Equal(t, time.Date(2026, 7, 2, 3, 0, 0, 0, time.UTC), c.Timestamp())
}

func TestZeroClockFallsBackToWallTime(t *testing.T) {
	var c Clock
	assert.WithinDuration(t, time.Now().UTC(), c.Timestamp(), time.Minute)
}
