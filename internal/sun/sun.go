// Package sun derives day and night locally from a geo location, for setups where
// nothing on the bus publishes the sun position.
package sun

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nathan-osman/go-sunrise"
	"github.com/wheelibin/huesence/internal/models"
)

type Location struct {
	Lat float64
	Lng float64
}

// ParseLocation reads a "lat,lng" pair.
func ParseLocation(s string) (Location, error) {
	latLng := strings.Split(s, ",")
	if len(latLng) != 2 {
		return Location{}, fmt.Errorf("invalid geo location %q, expected \"lat,lng\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latLng[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("invalid latitude in geo location %q", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(latLng[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return Location{}, fmt.Errorf("invalid longitude in geo location %q", s)
	}
	return Location{Lat: lat, Lng: lng}, nil
}

type Watcher struct {
	logger   *log.Logger
	location Location
	interval time.Duration
	now      func() time.Time
}

func NewWatcher(logger *log.Logger, location Location, interval time.Duration) *Watcher {
	return &Watcher{logger: logger, location: location, interval: interval, now: time.Now}
}

// Position returns night before sunrise or after sunset on t's date. During polar day
// or night there is no sunrise to compare against and the result is unknown.
func (w *Watcher) Position(t time.Time) models.NightFlag {
	rise, set := sunrise.SunriseSunset(w.location.Lat, w.location.Lng, t.Year(), t.Month(), t.Day())
	if rise.IsZero() || set.IsZero() {
		return models.NightUnknown
	}
	return models.NightFlagOf(t.Before(rise) || !t.Before(set))
}

// Run sends the current position straight away and then on every change until ctx is done.
func (w *Watcher) Run(ctx context.Context, out chan<- models.NightFlag) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	last := models.NightUnknown
	check := func() {
		position := w.Position(w.now())
		if !position.Known() || position == last {
			return
		}
		last = position
		w.logger.Info("Sun position", "position", position)
		select {
		case out <- position:
		case <-ctx.Done():
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
