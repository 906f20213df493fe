package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"forecaster/internal/cache"
	"forecaster/internal/forecast"
)

func TestWarmerStartStop(t *testing.T) {
	dir := t.TempDir()
	service := forecast.NewService(
		cache.NewForecastCache(dir),
		cache.NewHistoryCache(dir),
		nil, nil, nil, nil, nil,
		dir,
		nil,
	)

	w := New(service, time.Hour)
	require.NoError(t, w.Start())
	w.Stop()

	// Stop is idempotent.
	w.Stop()
}

func TestWarmerZeroIntervalFallsBack(t *testing.T) {
	w := New(nil, 0)
	require.NoError(t, w.Start())
	w.Stop()
}
