// Package state holds the durable record of pairing credentials, sensor occupancy,
// sensor names and the night-only preference.
//
// The in-memory document is authoritative. Every mutation is flushed to the backend
// straight away; at most one flush runs at a time and a flush requested while another
// is running marks the document dirty so the running flush writes it once more.
package state

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/huesence/internal/models"
	"github.com/wheelibin/huesence/internal/names"
)

type backend interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

type document struct {
	HueUsername        *string           `json:"hueUsername"`
	SensorVals         map[string]bool   `json:"sensorVals"`
	SensorNames        map[string]string `json:"sensorNames"`
	SensorNameByID     map[string]string `json:"sensorNameById"`
	OnlyControlAtNight bool              `json:"onlyControlAtNight"`
}

// older files used night_only for the preference
type storedDocument struct {
	HueUsername        *string           `json:"hueUsername"`
	SensorVals         map[string]bool   `json:"sensorVals"`
	SensorNames        map[string]string `json:"sensorNames"`
	SensorNameByID     map[string]string `json:"sensorNameById"`
	OnlyControlAtNight *bool             `json:"onlyControlAtNight"`
	NightOnly          *bool             `json:"night_only"`
}

type Store struct {
	logger  *log.Logger
	backend backend

	mu      sync.Mutex
	doc     document
	writing bool
	dirty   bool
}

func NewStore(logger *log.Logger, backend backend) *Store {
	return &Store{logger: logger, backend: backend, doc: defaults()}
}

func defaults() document {
	return document{
		SensorVals:     map[string]bool{},
		SensorNames:    map[string]string{},
		SensorNameByID: map[string]string{},
	}
}

// Load merges the stored document over the defaults. On a read or parse error the
// defaults stay in place and the error is returned for reporting.
func (s *Store) Load() error {
	data, err := s.backend.Load()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		s.logger.Info("No stored state found, starting fresh")
		return nil
	}

	stored := storedDocument{}
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("error parsing stored state, using defaults: %w", err)
	}

	doc := defaults()
	doc.HueUsername = stored.HueUsername
	for id, v := range stored.SensorVals {
		doc.SensorVals[id] = v
	}
	if stored.OnlyControlAtNight != nil {
		doc.OnlyControlAtNight = *stored.OnlyControlAtNight
	} else if stored.NightOnly != nil {
		doc.OnlyControlAtNight = *stored.NightOnly
	}

	// names are rebuilt through setName so both maps end up consistent whatever the file held
	for id, name := range stored.SensorNameByID {
		setName(&doc, id, name)
	}
	for name, id := range stored.SensorNames {
		if _, ok := doc.SensorNameByID[id]; !ok {
			setName(&doc, id, name)
		}
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	s.logger.Info("Loaded stored state", "sensors", len(doc.SensorVals), "names", len(doc.SensorNames), "paired", doc.HueUsername != nil)
	return nil
}

func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.FromPtr(s.doc.HueUsername)
}

// SetCredential stores the bridge username, an empty value clears it.
func (s *Store) SetCredential(username string) {
	s.mu.Lock()
	current := s.doc.HueUsername
	if (current == nil && username == "") || (current != nil && *current == username) {
		s.mu.Unlock()
		return
	}
	if username == "" {
		s.doc.HueUsername = nil
	} else {
		s.doc.HueUsername = lo.ToPtr(username)
	}
	s.mu.Unlock()

	s.flush()
}

// Occupancy returns the stored value and whether one has been stored.
func (s *Store) Occupancy(sensorID string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.doc.SensorVals[sensorID]
	return v, ok
}

// SetOccupancy returns false when the stored value already matched.
func (s *Store) SetOccupancy(sensorID string, occupied bool) bool {
	s.mu.Lock()
	if v, ok := s.doc.SensorVals[sensorID]; ok && v == occupied {
		s.mu.Unlock()
		return false
	}
	s.doc.SensorVals[sensorID] = occupied
	s.mu.Unlock()

	s.flush()
	return true
}

func (s *Store) Name(sensorID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.doc.SensorNameByID[sensorID]
	return name, ok
}

func (s *Store) SensorID(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.doc.SensorNames[names.Sanitize(name)]
	return id, ok
}

// SetName assigns a name to a sensor and returns the canonical form that was stored.
func (s *Store) SetName(sensorID string, name string) string {
	canonical := names.Sanitize(name)

	s.mu.Lock()
	if current, ok := s.doc.SensorNameByID[sensorID]; ok && current == canonical {
		s.mu.Unlock()
		return canonical
	}
	setName(&s.doc, sensorID, canonical)
	s.mu.Unlock()

	s.flush()
	return canonical
}

func setName(doc *document, sensorID string, name string) {
	canonical := names.Sanitize(name)

	// drop the sensor's previous name
	if previous, ok := doc.SensorNameByID[sensorID]; ok && doc.SensorNames[previous] == sensorID {
		delete(doc.SensorNames, previous)
	}
	// a name belongs to one sensor, take it from whoever had it
	if owner, ok := doc.SensorNames[canonical]; ok && owner != sensorID {
		delete(doc.SensorNameByID, owner)
	}

	if canonical == "" {
		delete(doc.SensorNameByID, sensorID)
		return
	}
	doc.SensorNames[canonical] = sensorID
	doc.SensorNameByID[sensorID] = canonical
}

func (s *Store) NightOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.OnlyControlAtNight
}

func (s *Store) SetNightOnly(nightOnly bool) bool {
	s.mu.Lock()
	if s.doc.OnlyControlAtNight == nightOnly {
		s.mu.Unlock()
		return false
	}
	s.doc.OnlyControlAtNight = nightOnly
	s.mu.Unlock()

	s.flush()
	return true
}

// Sensors returns every sensor with both a stored occupancy and a name, ordered by id.
func (s *Store) Sensors() []models.Sensor {
	s.mu.Lock()
	defer s.mu.Unlock()

	sensors := []models.Sensor{}
	for id, occupied := range s.doc.SensorVals {
		name, ok := s.doc.SensorNameByID[id]
		if !ok {
			continue
		}
		sensors = append(sensors, models.Sensor{ID: id, Name: name, Occupied: occupied})
	}
	sort.Slice(sensors, func(i, j int) bool { return sensors[i].ID < sensors[j].ID })
	return sensors
}

func (s *Store) flush() {
	s.mu.Lock()
	if s.writing {
		s.dirty = true
		s.mu.Unlock()
		return
	}
	s.writing = true

	for {
		data, err := json.Marshal(s.doc)
		s.dirty = false
		s.mu.Unlock()

		if err != nil {
			s.logger.Error("error encoding state", "err", err)
		} else if err := s.backend.Save(data); err != nil {
			s.logger.Error("error persisting state, keeping in-memory copy", "err", err)
		}

		s.mu.Lock()
		if !s.dirty {
			break
		}
	}

	s.writing = false
	s.mu.Unlock()
}
