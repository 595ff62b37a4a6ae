package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobres/internal/clock"
)

func TestClock_New_ReportsUTC(t *testing.T) {
	c := clock.New()
	assert.Equal(t, clock.ModeUTC, c.Mode())
	assert.Equal(t, time.UTC, c.Now().Location())
}

func TestClock_NewNamed_UnknownZoneErrors(t *testing.T) {
	_, err := clock.NewNamed("Not/AZone")
	require.Error(t, err)
}

func TestClock_NewNamed_ReportsGivenZone(t *testing.T) {
	c, err := clock.NewNamed("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, clock.ModeNamed, c.Mode())
	assert.Equal(t, "America/New_York", c.Now().Location().String())
}

func TestClock_NilReceiver_DefaultsToUTC(t *testing.T) {
	var c *clock.Clock
	assert.Equal(t, clock.ModeUTC, c.Mode())
	assert.Equal(t, time.UTC, c.Now().Location())
}
