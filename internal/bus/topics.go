package bus

import (
	"strings"
)

const DefaultTopicPrefix = "huesence"

type Kind string

const (
	KindScan       Kind = "scan"
	KindDisconnect Kind = "disconnect"
	KindOccupancy  Kind = "occupancy"
	KindName       Kind = "name"
	KindNight      Kind = "night"
	KindNightOnly  Kind = "night_only"
)

// route pairs the current topic pattern for a message kind with the legacy spelling
// still accepted. "+" marks the sensor id segment.
type route struct {
	kind    Kind
	current string
	legacy  string
}

var routes = []route{
	{KindScan, "hue/scan", "hue_scan"},
	{KindDisconnect, "hue/disconnect", "hue_disconnect"},
	{KindOccupancy, "sensors/+/occupied", "room/+/occupancy"},
	{KindName, "sensors/+/name", "room/+/name"},
	{KindNight, "sun/position", "sun"},
	{KindNightOnly, "hue/night_only", "hue_night_only"},
}

type Topics struct {
	Prefix string
}

func (t Topics) prefix() string {
	if t.Prefix == "" {
		return DefaultTopicPrefix
	}
	return strings.TrimSuffix(t.Prefix, "/")
}

func (t Topics) join(suffix string) string {
	return t.prefix() + "/" + suffix
}

func (t Topics) Status() string {
	return t.join("hue/status")
}

func (t Topics) Availability() string {
	return t.join("daemon/availability")
}

func (t Topics) Scan() string {
	return t.join("hue/scan")
}

func (t Topics) Disconnect() string {
	return t.join("hue/disconnect")
}

func (t Topics) NightOnly() string {
	return t.join("hue/night_only")
}

func (t Topics) Occupancy(sensorID string) string {
	return t.join(strings.Replace("sensors/+/occupied", "+", sensorID, 1))
}

func (t Topics) Name(sensorID string) string {
	return t.join(strings.Replace("sensors/+/name", "+", sensorID, 1))
}

// Subscriptions lists every pattern the gateway listens on, current and legacy.
func (t Topics) Subscriptions() []string {
	topics := []string{}
	for _, r := range routes {
		topics = append(topics, t.join(r.current), t.join(r.legacy))
	}
	return topics
}

// Match is a parsed incoming topic.
type Match struct {
	Kind     Kind
	SensorID string
	Legacy   bool
	// Current is the topic under the current scheme, the same as the incoming one unless Legacy
	Current string
}

func (t Topics) Match(topic string) (Match, bool) {
	rest, ok := strings.CutPrefix(topic, t.prefix()+"/")
	if !ok {
		return Match{}, false
	}

	for _, r := range routes {
		if id, ok := matchPattern(r.current, rest); ok {
			return Match{Kind: r.kind, SensorID: id, Current: topic}, true
		}
		if id, ok := matchPattern(r.legacy, rest); ok {
			current := t.join(strings.Replace(r.current, "+", id, 1))
			return Match{Kind: r.kind, SensorID: id, Legacy: true, Current: current}, true
		}
	}
	return Match{}, false
}

func matchPattern(pattern string, topic string) (string, bool) {
	want := strings.Split(pattern, "/")
	got := strings.Split(topic, "/")
	if len(want) != len(got) {
		return "", false
	}

	id := ""
	for i := range want {
		if want[i] == "+" {
			if got[i] == "" {
				return "", false
			}
			id = got[i]
			continue
		}
		if want[i] != got[i] {
			return "", false
		}
	}
	return id, true
}
