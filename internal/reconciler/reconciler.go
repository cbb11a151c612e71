// Package reconciler turns occupancy, day/night and preference changes into group saves
// on the connected bridge.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/huesence/internal/concurrency"
	"github.com/wheelibin/huesence/internal/models"
)

type GroupAPI interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
	SaveGroup(ctx context.Context, group models.Group) error
}

type recorder interface {
	ReportError(op string, err error)
	GroupSaved(on bool)
}

type sensorStore interface {
	SetOccupancy(sensorID string, occupied bool) bool
	Name(sensorID string) (string, bool)
	SetName(sensorID string, name string) string
	NightOnly() bool
	SetNightOnly(nightOnly bool) bool
	Sensors() []models.Sensor
}

// Session is the state that only lives as long as the process: the bridge handle and
// the last seen day/night flag.
type Session struct {
	groups GroupAPI
	night  models.NightFlag
}

type Options struct {
	Scheme              string
	GroupUpdateInterval time.Duration
}

type Reconciler struct {
	logger   *log.Logger
	store    sensorStore
	recorder recorder
	match    Matcher
	worker   concurrency.ThrottledWorker[models.Group]

	session Session
}

func NewReconciler(logger *log.Logger, store sensorStore, recorder recorder, opts Options) (*Reconciler, error) {
	match, err := NewMatcher(opts.Scheme)
	if err != nil {
		return nil, err
	}
	r := &Reconciler{
		logger:   logger,
		store:    store,
		recorder: recorder,
		match:    match,
	}
	r.worker = concurrency.NewThrottledWorker(opts.GroupUpdateInterval, r.saveGroup)
	return r, nil
}

// Connect hands the reconciler the group API of a freshly paired bridge.
func (r *Reconciler) Connect(groups GroupAPI) {
	r.session.groups = groups
}

// Disconnect drops the bridge handle, later events only update stored state.
func (r *Reconciler) Disconnect() {
	r.session.groups = nil
}

func (r *Reconciler) Connected() bool {
	return r.session.groups != nil
}

func (r *Reconciler) Night() models.NightFlag {
	return r.session.night
}

// on/off target for a sensor; save is false when policy leaves the group alone
func (r *Reconciler) target(occupied bool) (on bool, save bool) {
	if !occupied {
		return false, true
	}
	if r.session.night.IsNight() || !r.store.NightOnly() {
		return true, true
	}
	return false, false
}

func (r *Reconciler) HandleOccupancy(ctx context.Context, event models.OccupancyEvent) error {
	r.logger.Debug("Reconciler.HandleOccupancy", "sensor", event.SensorID, "occupied", event.Occupied)

	if event.Name != "" {
		r.store.SetName(event.SensorID, event.Name)
	}

	if !r.store.SetOccupancy(event.SensorID, event.Occupied) {
		r.logger.Debug("Reconciler.HandleOccupancy: unchanged", "sensor", event.SensorID)
		return nil
	}

	if !r.Connected() {
		r.logger.Info("Not connected to a bridge, occupancy stored only", "sensor", event.SensorID)
		return nil
	}

	on, save := r.target(event.Occupied)
	if !save {
		r.logger.Debug("Reconciler.HandleOccupancy: only controlling at night", "sensor", event.SensorID)
		return nil
	}

	name, ok := r.store.Name(event.SensorID)
	if !ok {
		r.logger.Info("Sensor has no name yet, nothing to match", "sensor", event.SensorID)
		return nil
	}

	groups, err := r.listGroups(ctx)
	if err != nil {
		return err
	}

	group, found := lo.Find(groups, func(g models.Group) bool {
		return r.match(g.Name, name, r.session.night)
	})
	if !found {
		r.logger.Info("No group matches sensor", "sensor", event.SensorID, "name", name)
		return nil
	}

	group.On = on
	return r.saveGroup(ctx, group)
}

// HandleNight records the new day/night flag and, on a real flip, brings every known
// sensor's group in line with its occupancy.
func (r *Reconciler) HandleNight(ctx context.Context, night models.NightFlag) error {
	r.logger.Debug("Reconciler.HandleNight", "night", night)

	previous := r.session.night
	if night.Known() {
		r.session.night = night
	}

	if !previous.Known() || !night.Known() || previous == night {
		return nil
	}
	r.logger.Info("Day/night changed", "from", previous, "to", night)

	if !r.Connected() {
		return nil
	}

	sensors := r.store.Sensors()
	if len(sensors) == 0 {
		return nil
	}

	groups, err := r.listGroups(ctx)
	if err != nil {
		return err
	}

	nightOnly := r.store.NightOnly()
	updates := []models.Group{}
	for _, sensor := range sensors {
		group, found := lo.Find(groups, func(g models.Group) bool {
			return r.match(g.Name, sensor.Name, night)
		})
		if !found {
			r.logger.Debug("Reconciler.HandleNight: no group", "sensor", sensor.ID, "name", sensor.Name)
			continue
		}
		group.On = sensor.Occupied && (night.IsNight() || !nightOnly)
		updates = append(updates, group)
	}

	return errors.Join(r.worker.Run(ctx, updates)...)
}

func (r *Reconciler) HandleName(sensorID string, name string) {
	canonical := r.store.SetName(sensorID, name)
	r.logger.Debug("Reconciler.HandleName", "sensor", sensorID, "name", canonical)
}

func (r *Reconciler) HandleNightOnly(nightOnly bool) {
	if r.store.SetNightOnly(nightOnly) {
		r.logger.Info("Night only control changed", "nightOnly", nightOnly)
	}
}

func (r *Reconciler) listGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := r.session.groups.ListGroups(ctx)
	if err != nil {
		err = fmt.Errorf("error listing groups: %w", err)
		r.recorder.ReportError("listGroups", err)
		return nil, err
	}
	return groups, nil
}

func (r *Reconciler) saveGroup(ctx context.Context, group models.Group) error {
	if !r.Connected() {
		return nil
	}
	if err := r.session.groups.SaveGroup(ctx, group); err != nil {
		err = fmt.Errorf("error saving group %q: %w", group.Name, err)
		r.recorder.ReportError("saveGroup", err)
		return err
	}
	r.logger.Info("Group updated", "group", group.Name, "on", group.On)
	r.recorder.GroupSaved(group.On)
	return nil
}
