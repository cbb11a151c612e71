package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/huesence/internal/metrics"
)

func newRecorder() *metrics.Recorder {
	return metrics.NewRecorder(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}))
}

func Test_Recorder(t *testing.T) {

	t.Run("should count errors, saves and messages", func(t *testing.T) {
		r := newRecorder()

		r.ReportError("saveGroup", errors.New("timeout"))
		r.ReportError("saveGroup", errors.New("timeout"))
		r.GroupSaved(true)
		r.MessageReceived("occupancy", true)

		count, err := testutil.GatherAndCount(r.Registry(),
			"huesence_errors_total", "huesence_group_saves_total", "huesence_bus_messages_total")
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("pairing state: should only flag the latest state", func(t *testing.T) {
		r := newRecorder()

		r.PairingState("discovering")
		r.PairingState("connected")

		body := scrape(t, r)
		assert.Contains(t, body, `huesence_pairing_state{state="connected"} 1`)
		assert.Contains(t, body, `huesence_pairing_state{state="discovering"} 0`)
		assert.Contains(t, body, `huesence_pairing_transitions_total{state="discovering"} 1`)
	})
}

func scrape(t *testing.T, r *metrics.Recorder) string {
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}
