// Package scheduler keeps today's forecast warm in the cache so a button
// press inside the TTL window never waits on the generative AI calls.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"forecaster/internal/forecast"
)

// Warmer periodically regenerates today's forecast for the default location.
type Warmer struct {
	scheduler *gocron.Scheduler
	service   *forecast.Service
	interval  time.Duration
}

// New creates a Warmer refreshing the cache every interval.
func New(service *forecast.Service, interval time.Duration) *Warmer {
	return &Warmer{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the warm job and starts the underlying scheduler.
func (w *Warmer) Start() error {
	minutes := int(w.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := w.scheduler.Every(minutes).Minutes().Do(func() {
		slog.Info("scheduler: warming forecast cache")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := w.service.GetForecastData(ctx, map[string]string{"date": "today"}); err != nil {
			slog.Error("scheduler: cache warm failed", "error", err)
			return
		}
		slog.Info("scheduler: forecast cache warm")
	})
	if err != nil {
		return err
	}

	w.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (w *Warmer) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}
