// Package cache persists the two forecaster caches as flat JSON files inside
// a single cache directory: generated forecasts keyed by date and coordinate
// (with a TTL), and prior-year weekly temperature averages keyed by year and
// coordinate (permanent).
//
// Each operation performs a whole-file read-modify-write. Writes go through a
// temp file and rename so a crash mid-write never leaves a torn file behind.
// There is no cross-process locking; the appliance runs a single process.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"forecaster/internal/forecast"
)

const (
	forecastFile   = "weather_forecast.json"
	historicalFile = "weather_historical.json"
)

// ForecastCache stores generated forecasts: {date: {coordKey: entry}}.
type ForecastCache struct {
	path string
}

// NewForecastCache returns a forecast cache backed by a file in dir.
func NewForecastCache(dir string) *ForecastCache {
	return &ForecastCache{path: filepath.Join(dir, forecastFile)}
}

// Lookup returns the cached forecast for (date, coord) if one exists and has
// not expired at now (epoch seconds).
func (c *ForecastCache) Lookup(date, coord string, now int64) (forecast.CachedForecast, bool, error) {
	var store map[string]map[string]forecast.CachedForecast
	if err := loadJSON(c.path, &store); err != nil {
		return forecast.CachedForecast{}, false, err
	}

	entry, ok := store[date][coord]
	if !ok || now > entry.Expiration {
		return forecast.CachedForecast{}, false, nil
	}
	return entry, true, nil
}

// Put writes the entry for (date, coord), preserving entries for other dates
// and coordinates.
func (c *ForecastCache) Put(date, coord string, entry forecast.CachedForecast) error {
	var store map[string]map[string]forecast.CachedForecast
	if err := loadJSON(c.path, &store); err != nil {
		return err
	}
	if store == nil {
		store = map[string]map[string]forecast.CachedForecast{}
	}
	if store[date] == nil {
		store[date] = map[string]forecast.CachedForecast{}
	}
	store[date][coord] = entry

	return saveJSON(c.path, store)
}

// HistoryCache stores weekly average pairs: {year: {coordKey: [[low, high]]}}.
// Historical data for a past year is immutable, so entries never expire.
type HistoryCache struct {
	path string
}

// NewHistoryCache returns a historical cache backed by a file in dir.
func NewHistoryCache(dir string) *HistoryCache {
	return &HistoryCache{path: filepath.Join(dir, historicalFile)}
}

// Lookup returns the weekly averages for (year, coord); presence alone is a hit.
func (c *HistoryCache) Lookup(year, coord string) ([][2]int, bool, error) {
	var store map[string]map[string][][2]int
	if err := loadJSON(c.path, &store); err != nil {
		return nil, false, err
	}
	weeks, ok := store[year][coord]
	return weeks, ok, nil
}

// Put writes the full weekly sequence for (year, coord).
func (c *HistoryCache) Put(year, coord string, weeks [][2]int) error {
	var store map[string]map[string][][2]int
	if err := loadJSON(c.path, &store); err != nil {
		return err
	}
	if store == nil {
		store = map[string]map[string][][2]int{}
	}
	if store[year] == nil {
		store[year] = map[string][][2]int{}
	}
	store[year][coord] = weeks

	return saveJSON(c.path, store)
}

// loadJSON reads the whole store file into dst. A missing file is not an
// error: dst is left at its zero value and an empty store results.
func loadJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding cache %s: %w", path, err)
	}
	return nil
}

// saveJSON rewrites the whole store file atomically via temp-file-and-rename,
// creating the cache directory first if needed.
func saveJSON(path string, src any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encoding cache %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing cache %s: %w", path, err)
	}
	return nil
}
