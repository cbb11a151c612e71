package state_test

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/huesence/internal/models"
	"github.com/wheelibin/huesence/internal/state"
)

type memoryBackend struct {
	mu      sync.Mutex
	data    []byte
	loadErr error
	saveErr error
	saves   [][]byte

	// when set, the first Save signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (b *memoryBackend) Load() ([]byte, error) {
	return b.data, b.loadErr
}

func (b *memoryBackend) Save(data []byte) error {
	b.mu.Lock()
	first := len(b.saves) == 0
	b.saves = append(b.saves, data)
	b.mu.Unlock()

	if first && b.started != nil {
		close(b.started)
		<-b.release
	}
	return b.saveErr
}

func (b *memoryBackend) savedDocs(t *testing.T) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	docs := []map[string]any{}
	for _, s := range b.saves {
		doc := map[string]any{}
		require.NoError(t, json.Unmarshal(s, &doc))
		docs = append(docs, doc)
	}
	return docs
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
}

func Test_Load(t *testing.T) {

	t.Run("no stored data: should use defaults", func(t *testing.T) {
		store := state.NewStore(newLogger(), &memoryBackend{})

		err := store.Load()

		assert.NoError(t, err)
		assert.Equal(t, "", store.Credential())
		assert.False(t, store.NightOnly())
		assert.Empty(t, store.Sensors())
	})

	t.Run("should merge stored values over defaults", func(t *testing.T) {
		backend := &memoryBackend{data: []byte(`{
			"hueUsername": "user-1",
			"sensorVals": {"r1": true, "r2": false},
			"sensorNames": {"bedroom": "r1"},
			"onlyControlAtNight": true
		}`)}
		store := state.NewStore(newLogger(), backend)

		err := store.Load()

		require.NoError(t, err)
		assert.Equal(t, "user-1", store.Credential())
		assert.True(t, store.NightOnly())
		v, ok := store.Occupancy("r1")
		assert.True(t, ok)
		assert.True(t, v)
		// reverse map rebuilt from sensorNames
		name, ok := store.Name("r1")
		assert.True(t, ok)
		assert.Equal(t, "bedroom", name)
		assert.Equal(t, []models.Sensor{{ID: "r1", Name: "bedroom", Occupied: true}}, store.Sensors())
	})

	t.Run("legacy night_only key: should be honoured", func(t *testing.T) {
		store := state.NewStore(newLogger(), &memoryBackend{data: []byte(`{"night_only": true}`)})

		require.NoError(t, store.Load())

		assert.True(t, store.NightOnly())
	})

	t.Run("missing maps: should not crash on later mutations", func(t *testing.T) {
		store := state.NewStore(newLogger(), &memoryBackend{data: []byte(`{"hueUsername": null}`)})
		require.NoError(t, store.Load())

		assert.True(t, store.SetOccupancy("r1", true))
		assert.Equal(t, "bedroom", store.SetName("r1", "Bedroom"))
	})

	t.Run("corrupt document: should keep defaults and return the error", func(t *testing.T) {
		store := state.NewStore(newLogger(), &memoryBackend{data: []byte(`{"hueUsername": "abc", "sensorVals": {`)})

		err := store.Load()

		assert.Error(t, err)
		assert.Equal(t, "", store.Credential())
		assert.True(t, store.SetOccupancy("r1", true))
	})

	t.Run("read error: should return the error", func(t *testing.T) {
		store := state.NewStore(newLogger(), &memoryBackend{loadErr: errors.New("disk gone")})

		err := store.Load()

		assert.EqualError(t, err, "disk gone")
	})
}

func Test_SetOccupancy(t *testing.T) {

	t.Run("should persist a changed value", func(t *testing.T) {
		backend := &memoryBackend{}
		store := state.NewStore(newLogger(), backend)

		changed := store.SetOccupancy("r1", true)

		assert.True(t, changed)
		docs := backend.savedDocs(t)
		require.Len(t, docs, 1)
		assert.Equal(t, map[string]any{"r1": true}, docs[0]["sensorVals"])
	})

	t.Run("same value twice: should report no change and not write again", func(t *testing.T) {
		backend := &memoryBackend{}
		store := state.NewStore(newLogger(), backend)

		first := store.SetOccupancy("r1", false)
		second := store.SetOccupancy("r1", false)

		assert.True(t, first)
		assert.False(t, second)
		assert.Len(t, backend.savedDocs(t), 1)
	})

	t.Run("save error: should keep the in-memory value", func(t *testing.T) {
		store := state.NewStore(newLogger(), &memoryBackend{saveErr: errors.New("read only")})

		store.SetOccupancy("r1", true)

		v, ok := store.Occupancy("r1")
		assert.True(t, ok)
		assert.True(t, v)
	})
}

func Test_SetName(t *testing.T) {

	t.Run("should store the canonical name both ways", func(t *testing.T) {
		store := state.NewStore(newLogger(), &memoryBackend{})

		canonical := store.SetName("r1", "  Master  Bedroom! ")

		assert.Equal(t, "master bedroom", canonical)
		id, ok := store.SensorID("Master Bedroom")
		assert.True(t, ok)
		assert.Equal(t, "r1", id)
		name, _ := store.Name("r1")
		assert.Equal(t, "master bedroom", name)
	})

	t.Run("rename: should drop the old name", func(t *testing.T) {
		store := state.NewStore(newLogger(), &memoryBackend{})

		store.SetName("r1", "Bedroom")
		store.SetName("r1", "Office")

		_, ok := store.SensorID("bedroom")
		assert.False(t, ok)
		id, _ := store.SensorID("office")
		assert.Equal(t, "r1", id)
	})

	t.Run("name moved to another sensor: should unlink the previous owner", func(t *testing.T) {
		store := state.NewStore(newLogger(), &memoryBackend{})

		store.SetName("r1", "Bedroom")
		store.SetName("r2", "Bedroom")

		_, ok := store.Name("r1")
		assert.False(t, ok)
		id, _ := store.SensorID("bedroom")
		assert.Equal(t, "r2", id)
	})

	t.Run("unchanged name: should not write", func(t *testing.T) {
		backend := &memoryBackend{}
		store := state.NewStore(newLogger(), backend)

		store.SetName("r1", "Bedroom")
		store.SetName("r1", "bedroom")

		assert.Len(t, backend.savedDocs(t), 1)
	})
}

func Test_Credential(t *testing.T) {

	t.Run("set and clear: should persist null when cleared", func(t *testing.T) {
		backend := &memoryBackend{}
		store := state.NewStore(newLogger(), backend)

		store.SetCredential("user-1")
		store.SetCredential("")

		assert.Equal(t, "", store.Credential())
		docs := backend.savedDocs(t)
		require.Len(t, docs, 2)
		assert.Equal(t, "user-1", docs[0]["hueUsername"])
		assert.Nil(t, docs[1]["hueUsername"])
	})

	t.Run("clearing an empty credential: should not write", func(t *testing.T) {
		backend := &memoryBackend{}
		store := state.NewStore(newLogger(), backend)

		store.SetCredential("")

		assert.Empty(t, backend.savedDocs(t))
	})
}

func Test_Flush_Coalescing(t *testing.T) {

	t.Run("mutation during a write: should not block and should be written once the write completes", func(t *testing.T) {
		backend := &memoryBackend{started: make(chan struct{}), release: make(chan struct{})}
		store := state.NewStore(newLogger(), backend)

		done := make(chan struct{})
		go func() {
			defer close(done)
			store.SetOccupancy("r1", true)
		}()
		<-backend.started

		// returns straight away, the running flush picks it up
		store.SetOccupancy("r2", true)
		store.SetNightOnly(true)

		close(backend.release)
		<-done

		docs := backend.savedDocs(t)
		require.Len(t, docs, 2)
		last := docs[1]
		assert.Equal(t, map[string]any{"r1": true, "r2": true}, last["sensorVals"])
		assert.Equal(t, true, last["onlyControlAtNight"])
	})
}
