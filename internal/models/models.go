package models

// a light group on the bridge (i.e. a room)
type Group struct {
	ID   int
	Name string
	On   bool
}

// a known sensor with its canonical name and last reported occupancy
type Sensor struct {
	ID       string
	Name     string
	Occupied bool
}

// an occupancy change reported on the bus
type OccupancyEvent struct {
	SensorID string
	Occupied bool
	// canonical name embedded in the event, empty when the name arrives separately
	Name string
}

// NightFlag is unknown until the first day/night signal is observed.
type NightFlag int

const (
	NightUnknown NightFlag = iota
	Day
	Night
)

func NightFlagOf(isNight bool) NightFlag {
	if isNight {
		return Night
	}
	return Day
}

func (f NightFlag) Known() bool {
	return f != NightUnknown
}

// IsNight reports false while the flag is still unknown.
func (f NightFlag) IsNight() bool {
	return f == Night
}

func (f NightFlag) String() string {
	switch f {
	case Day:
		return "day"
	case Night:
		return "night"
	default:
		return "unknown"
	}
}

// status message published on the bus
type PairingStatus struct {
	Status string `json:"status"`
	Host   string `json:"host,omitempty"`
	Ts     int64  `json:"ts"`
}
