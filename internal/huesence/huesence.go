package huesence

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/huesence/internal/models"
	"github.com/wheelibin/huesence/internal/pairing"
	"github.com/wheelibin/huesence/internal/reconciler"
)

type pairer interface {
	Scan(ctx context.Context) (*pairing.Connection, error)
	RequestScan(ctx context.Context) (*pairing.Connection, error)
	RequestDisconnect() error
}

type eventReconciler interface {
	Connect(groups reconciler.GroupAPI)
	Disconnect()
	HandleOccupancy(ctx context.Context, event models.OccupancyEvent) error
	HandleNight(ctx context.Context, night models.NightFlag) error
	HandleName(sensorID string, name string)
	HandleNightOnly(nightOnly bool)
}

// GroupsFactory builds the group API for a paired bridge.
type GroupsFactory func(conn pairing.Connection) reconciler.GroupAPI

type scanResult struct {
	conn *pairing.Connection
	err  error
}

// Huesence is the process loop. It owns the reconciler and is the only goroutine that
// calls into it; bus handlers and scans hand their results over through channels.
type Huesence struct {
	logger        *log.Logger
	pairer        pairer
	reconciler    eventReconciler
	groups        GroupsFactory
	retryInterval time.Duration
	sun           <-chan models.NightFlag

	events      chan func(ctx context.Context)
	scanResults chan scanResult
	done        chan struct{}
	retry       <-chan time.Time
}

// NewHuesence takes an optional sun channel, nil when the day/night signal only comes from the bus.
func NewHuesence(
	logger *log.Logger,
	pairer pairer,
	reconciler eventReconciler,
	groups GroupsFactory,
	retryInterval time.Duration,
	sun <-chan models.NightFlag,
) *Huesence {
	return &Huesence{
		logger:        logger,
		pairer:        pairer,
		reconciler:    reconciler,
		groups:        groups,
		retryInterval: retryInterval,
		sun:           sun,
		events:        make(chan func(ctx context.Context), 64),
		scanResults:   make(chan scanResult, 1),
		done:          make(chan struct{}),
	}
}

func (h *Huesence) Run(ctx context.Context) {
	h.logger.Debug("Huesence.Run")
	defer close(h.done)

	// pair straight away, a stored credential is reused when still valid
	h.startScan(ctx, h.pairer.Scan)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Huesence.Run: stop signal received")
			return

		case handle := <-h.events:
			handle(ctx)

		case result := <-h.scanResults:
			h.handleScanResult(result)

		case <-h.retry:
			h.retry = nil
			h.startScan(ctx, h.pairer.Scan)

		case night := <-h.sun:
			h.handleNight(ctx, night)
		}
	}
}

func (h *Huesence) startScan(ctx context.Context, scan func(ctx context.Context) (*pairing.Connection, error)) {
	go func() {
		conn, err := scan(ctx)
		select {
		case h.scanResults <- scanResult{conn: conn, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (h *Huesence) handleScanResult(result scanResult) {
	switch {
	case result.err == nil:
		h.logger.Info("Bridge paired, controlling groups", "host", result.conn.Host)
		h.retry = nil
		h.reconciler.Connect(h.groups(*result.conn))
		return

	case errors.Is(result.err, pairing.ErrScanInProgress),
		errors.Is(result.err, pairing.ErrDebounced),
		errors.Is(result.err, pairing.ErrCancelled),
		errors.Is(result.err, context.Canceled):
		h.logger.Debug("Huesence.handleScanResult: ignored", "err", result.err)
		return
	}

	// the previous bridge can't be trusted any more
	h.reconciler.Disconnect()

	if pairing.Retryable(result.err) {
		h.logger.Info("Retrying bridge scan", "in", h.retryInterval)
		h.retry = time.After(h.retryInterval)
		return
	}
	h.logger.Warn("Pairing needs attention, waiting for a manual scan", "err", result.err)
}

func (h *Huesence) handleNight(ctx context.Context, night models.NightFlag) {
	if err := h.reconciler.HandleNight(ctx, night); err != nil {
		h.logger.Debug("Huesence.handleNight", "err", err)
	}
}

func (h *Huesence) enqueue(handle func(ctx context.Context)) {
	select {
	case h.events <- handle:
	case <-h.done:
	}
}

func (h *Huesence) OnOccupancy(event models.OccupancyEvent) {
	h.enqueue(func(ctx context.Context) {
		if err := h.reconciler.HandleOccupancy(ctx, event); err != nil {
			h.logger.Debug("Huesence.OnOccupancy", "sensor", event.SensorID, "err", err)
		}
	})
}

func (h *Huesence) OnName(sensorID string, name string) {
	h.enqueue(func(_ context.Context) {
		h.reconciler.HandleName(sensorID, name)
	})
}

func (h *Huesence) OnNight(night models.NightFlag) {
	h.enqueue(func(ctx context.Context) {
		h.handleNight(ctx, night)
	})
}

func (h *Huesence) OnNightOnly(nightOnly bool) {
	h.enqueue(func(_ context.Context) {
		h.reconciler.HandleNightOnly(nightOnly)
	})
}

func (h *Huesence) OnScanRequest() {
	h.enqueue(func(ctx context.Context) {
		h.logger.Info("Bridge scan requested")
		h.startScan(ctx, h.pairer.RequestScan)
	})
}

func (h *Huesence) OnDisconnectRequest() {
	h.enqueue(func(_ context.Context) {
		if err := h.pairer.RequestDisconnect(); err != nil {
			h.logger.Debug("Huesence.OnDisconnectRequest", "err", err)
			return
		}
		h.retry = nil
		h.reconciler.Disconnect()
	})
}
