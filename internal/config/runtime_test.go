package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobres/internal/config"
)

func TestRuntimeConfig_TableNameReflectsPrefix(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{TablePrefix: "acme_"})
	assert.Equal(t, "acme_delayed_jobs", rc.TableName())

	rc.SetTablePrefix("")
	assert.Equal(t, "delayed_jobs", rc.TableName())
}

func TestRuntimeConfig_WorkerDefaultsRoundTrip(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{})
	minP, maxP := 1, 9

	rc.SetWorkerDefaults(config.WorkerDefaults{
		Name:        "worker.test",
		ReadAhead:   3,
		MinPriority: &minP,
		MaxPriority: &maxP,
		Queues:      []string{"mailers"},
		MaxRunTime:  2 * time.Hour,
	})

	d := rc.WorkerDefaults()
	require.NotNil(t, d.MinPriority)
	require.NotNil(t, d.MaxPriority)
	assert.Equal(t, "worker.test", d.Name)
	assert.Equal(t, 3, d.ReadAhead)
	assert.Equal(t, 1, *d.MinPriority)
	assert.Equal(t, 9, *d.MaxPriority)
	assert.Equal(t, []string{"mailers"}, d.Queues)
	assert.Equal(t, 2*time.Hour, d.MaxRunTime)
}

func TestRuntimeConfig_ClockRebind(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{ClockMode: "utc"})
	assert.Equal(t, "utc", rc.ClockMode())

	rc.SetClock("named", "America/New_York")
	assert.Equal(t, "named", rc.ClockMode())
	assert.Equal(t, "America/New_York", rc.ClockZone())
}
