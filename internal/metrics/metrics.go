// Package metrics is the error-tracking collaborator and the Prometheus counters behind
// the optional /metrics endpoint.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder struct {
	logger   *log.Logger
	registry *prometheus.Registry

	errors       *prometheus.CounterVec
	groupSaves   *prometheus.CounterVec
	pairing      *prometheus.CounterVec
	pairingState *prometheus.GaugeVec
	messages     *prometheus.CounterVec

	mu        sync.Mutex
	lastState string
}

func NewRecorder(logger *log.Logger) *Recorder {
	r := &Recorder{
		logger:   logger,
		registry: prometheus.NewRegistry(),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huesence_errors_total",
			Help: "Reported errors by operation.",
		}, []string{"op"}),
		groupSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huesence_group_saves_total",
			Help: "Group state saves sent to the bridge.",
		}, []string{"on"}),
		pairing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huesence_pairing_transitions_total",
			Help: "Pairing state machine transitions by target state.",
		}, []string{"state"}),
		pairingState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "huesence_pairing_state",
			Help: "1 for the current pairing state.",
		}, []string{"state"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huesence_bus_messages_total",
			Help: "Bus messages received by kind.",
		}, []string{"kind", "legacy"}),
	}
	r.registry.MustRegister(r.errors, r.groupSaves, r.pairing, r.pairingState, r.messages)
	return r
}

// ReportError logs err and counts it against op.
func (r *Recorder) ReportError(op string, err error) {
	r.logger.Error("error reported", "op", op, "err", err)
	r.errors.WithLabelValues(op).Inc()
}

func (r *Recorder) GroupSaved(on bool) {
	r.groupSaves.WithLabelValues(strconv.FormatBool(on)).Inc()
}

func (r *Recorder) PairingState(state string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pairing.WithLabelValues(state).Inc()
	if r.lastState != "" {
		r.pairingState.WithLabelValues(r.lastState).Set(0)
	}
	r.pairingState.WithLabelValues(state).Set(1)
	r.lastState = state
}

func (r *Recorder) MessageReceived(kind string, legacy bool) {
	r.messages.WithLabelValues(kind, strconv.FormatBool(legacy)).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
