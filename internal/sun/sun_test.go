package sun_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/huesence/internal/models"
	"github.com/wheelibin/huesence/internal/sun"
)

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
}

func Test_ParseLocation(t *testing.T) {

	t.Run("should parse lat,lng", func(t *testing.T) {
		loc, err := sun.ParseLocation("51.5, -0.12")

		require.NoError(t, err)
		assert.Equal(t, sun.Location{Lat: 51.5, Lng: -0.12}, loc)
	})

	t.Run("malformed: should error", func(t *testing.T) {
		for _, s := range []string{"", "51.5", "a,b", "91,0", "0,181", "1,2,3"} {
			_, err := sun.ParseLocation(s)
			assert.Error(t, err, s)
		}
	})
}

func Test_Position(t *testing.T) {
	// equator, greenwich: sunrise around 06:00 UTC and sunset around 18:00 UTC
	w := sun.NewWatcher(newLogger(), sun.Location{Lat: 0, Lng: 0}, time.Minute)

	assert.Equal(t, models.Night, w.Position(time.Date(2024, 3, 20, 3, 0, 0, 0, time.UTC)))
	assert.Equal(t, models.Day, w.Position(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, models.Night, w.Position(time.Date(2024, 3, 20, 21, 0, 0, 0, time.UTC)))
}

func Test_Position_PolarDay(t *testing.T) {
	w := sun.NewWatcher(newLogger(), sun.Location{Lat: 89, Lng: 0}, time.Minute)

	assert.Equal(t, models.NightUnknown, w.Position(time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)))
}

func Test_Run(t *testing.T) {

	t.Run("should emit the current position straight away", func(t *testing.T) {
		w := sun.NewWatcher(newLogger(), sun.Location{Lat: 0, Lng: 0}, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		out := make(chan models.NightFlag, 1)

		go w.Run(ctx, out)

		select {
		case position := <-out:
			assert.True(t, position.Known())
		case <-time.After(time.Second):
			t.Fatal("no position emitted")
		}
	})
}
