package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wheelibin/huesence/internal/bus"
	"github.com/wheelibin/huesence/internal/models"
)

func Test_ParseBool(t *testing.T) {
	tests := []struct {
		payload string
		want    bool
		wantErr bool
	}{
		{payload: "true", want: true},
		{payload: "false", want: false},
		{payload: "1", want: true},
		{payload: "0", want: false},
		{payload: `"on"`, want: true},
		{payload: "off", want: false},
		{payload: " ON ", want: true},
		{payload: `{"val": true}`, want: true},
		{payload: `{"val": 0}`, want: false},
		{payload: "2", wantErr: true},
		{payload: "", wantErr: true},
		{payload: "yes please", wantErr: true},
		{payload: `{"value": true}`, wantErr: true},
		{payload: "null", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, err := bus.ParseBool([]byte(tt.payload))

			if tt.wantErr {
				assert.ErrorIs(t, err, bus.ErrMalformedPayload)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ParseOccupancy(t *testing.T) {

	t.Run("bare value: should have no name", func(t *testing.T) {
		occupied, name, err := bus.ParseOccupancy([]byte("1"))

		assert.NoError(t, err)
		assert.True(t, occupied)
		assert.Equal(t, "", name)
	})

	t.Run("object with occupied and name: should read both", func(t *testing.T) {
		occupied, name, err := bus.ParseOccupancy([]byte(`{"occupied": false, "name": "Office"}`))

		assert.NoError(t, err)
		assert.False(t, occupied)
		assert.Equal(t, "Office", name)
	})

	t.Run("head count: should be occupied when anyone is in", func(t *testing.T) {
		tests := []struct {
			payload string
			want    bool
		}{
			{payload: "2", want: true},
			{payload: `{"val": 2}`, want: true},
			{payload: `{"occupied": 3, "name": "Office"}`, want: true},
			{payload: "0", want: false},
			{payload: `{"val": 0}`, want: false},
		}
		for _, tt := range tests {
			occupied, _, err := bus.ParseOccupancy([]byte(tt.payload))

			assert.NoError(t, err, tt.payload)
			assert.Equal(t, tt.want, occupied, tt.payload)
		}
	})

	t.Run("negative or fractional count: should be malformed", func(t *testing.T) {
		for _, payload := range []string{"-1", "1.5", `{"val": -2}`, `"lots"`} {
			_, _, err := bus.ParseOccupancy([]byte(payload))

			assert.ErrorIs(t, err, bus.ErrMalformedPayload, payload)
		}
	})

	t.Run("object without a value: should be malformed", func(t *testing.T) {
		_, _, err := bus.ParseOccupancy([]byte(`{"name": "Office"}`))

		assert.ErrorIs(t, err, bus.ErrMalformedPayload)
	})
}

func Test_ParseNight(t *testing.T) {
	for _, v := range []string{"sunset", `"dusk"`, "Night", `{"val": "sunset"}`} {
		got, err := bus.ParseNight([]byte(v))
		assert.NoError(t, err, v)
		assert.Equal(t, models.Night, got, v)
	}
	for _, v := range []string{"sunrise", "dawn", `"day"`} {
		got, err := bus.ParseNight([]byte(v))
		assert.NoError(t, err, v)
		assert.Equal(t, models.Day, got, v)
	}

	_, err := bus.ParseNight([]byte("noon"))
	assert.ErrorIs(t, err, bus.ErrMalformedPayload)
	_, err = bus.ParseNight([]byte("true"))
	assert.ErrorIs(t, err, bus.ErrMalformedPayload)
}

func Test_ParseName(t *testing.T) {
	name, err := bus.ParseName([]byte(`{"name": " Kitchen "}`))
	assert.NoError(t, err)
	assert.Equal(t, "Kitchen", name)

	name, err = bus.ParseName([]byte(""))
	assert.NoError(t, err)
	assert.Equal(t, "", name)

	_, err = bus.ParseName([]byte("42"))
	assert.ErrorIs(t, err, bus.ErrMalformedPayload)
}
