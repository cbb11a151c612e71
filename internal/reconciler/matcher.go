package reconciler

import (
	"fmt"

	"github.com/wheelibin/huesence/internal/constants"
	"github.com/wheelibin/huesence/internal/models"
	"github.com/wheelibin/huesence/internal/names"
)

// Matcher reports whether a bridge group belongs to a sensor with the given canonical name.
type Matcher func(groupName string, sensorName string, night models.NightFlag) bool

func NewMatcher(scheme string) (Matcher, error) {
	switch scheme {
	case "", constants.MatchSchemeExact:
		return matchExact, nil
	case constants.MatchSchemeDaytime:
		return matchDaytime, nil
	default:
		return nil, fmt.Errorf("unknown matching scheme %q", scheme)
	}
}

func matchExact(groupName string, sensorName string, _ models.NightFlag) bool {
	return names.Sanitize(groupName) == names.Sanitize(sensorName)
}

// outside the night the "<name> daytime" group is controlled instead
func matchDaytime(groupName string, sensorName string, night models.NightFlag) bool {
	if night.IsNight() {
		return matchExact(groupName, sensorName, night)
	}
	return names.Sanitize(groupName) == names.Sanitize(sensorName+constants.DaytimeGroupSuffix)
}
