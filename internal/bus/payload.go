package bus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"github.com/wheelibin/huesence/internal/models"
)

var nightValues = []string{"sunset", "dusk", "night"}
var dayValues = []string{"sunrise", "dawn", "day"}

// decode returns the JSON value of the payload, or the trimmed text when it isn't JSON.
// A {"val": ...} wrapper is unwrapped.
func decode(payload []byte) (any, map[string]any) {
	trimmed := bytes.TrimSpace(payload)

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed), nil
	}

	if obj, ok := v.(map[string]any); ok {
		if inner, ok := obj["val"]; ok {
			return inner, obj
		}
		return nil, obj
	}
	return v, nil
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		switch t {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "on":
			return true, true
		case "false", "0", "off":
			return false, true
		}
	}
	return false, false
}

// ParseBool accepts true/false, 1/0, "on"/"off", as bare values or wrapped in {"val": ...}.
func ParseBool(payload []byte) (bool, error) {
	v, _ := decode(payload)
	b, ok := toBool(v)
	if !ok {
		return false, fmt.Errorf("%w: expected a boolean, got %q", ErrMalformedPayload, payload)
	}
	return b, nil
}

// toOccupied accepts a boolean or a head count, anyone in the room counts as occupied.
func toOccupied(v any) (bool, bool) {
	if count, ok := v.(float64); ok {
		if count < 0 || count != math.Trunc(count) {
			return false, false
		}
		return count > 0, true
	}
	return toBool(v)
}

// ParseOccupancy reads an occupancy value plus the sensor name some publishers embed.
func ParseOccupancy(payload []byte) (bool, string, error) {
	v, obj := decode(payload)
	if v == nil && obj != nil {
		v = obj["occupied"]
	}

	occupied, ok := toOccupied(v)
	if !ok {
		return false, "", fmt.Errorf("%w: expected an occupancy value, got %q", ErrMalformedPayload, payload)
	}

	name := ""
	if obj != nil {
		if n, ok := obj["name"].(string); ok {
			name = n
		}
	}
	return occupied, name, nil
}

func ParseNight(payload []byte) (models.NightFlag, error) {
	v, _ := decode(payload)
	s, ok := v.(string)
	if !ok {
		return models.NightUnknown, fmt.Errorf("%w: expected a sun position, got %q", ErrMalformedPayload, payload)
	}

	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case lo.Contains(nightValues, s):
		return models.Night, nil
	case lo.Contains(dayValues, s):
		return models.Day, nil
	default:
		return models.NightUnknown, fmt.Errorf("%w: unknown sun position %q", ErrMalformedPayload, s)
	}
}

// ParseName returns the announced name; an empty payload clears it.
func ParseName(payload []byte) (string, error) {
	v, obj := decode(payload)
	if v == nil && obj != nil {
		v = obj["name"]
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected a name, got %q", ErrMalformedPayload, payload)
	}
	return strings.TrimSpace(s), nil
}
