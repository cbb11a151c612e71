package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/wheelibin/huesence/internal/constants"
	"github.com/wheelibin/huesence/internal/sun"
)

type StateConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type MQTTConfig struct {
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"clientId"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	QoS         int    `mapstructure:"qos"`
	TopicPrefix string `mapstructure:"topicPrefix"`
}

type HueConfig struct {
	DeviceType          string        `mapstructure:"deviceType"`
	Hosts               []string      `mapstructure:"hosts"`
	PortalDiscovery     bool          `mapstructure:"portalDiscovery"`
	SSDPDiscovery       bool          `mapstructure:"ssdpDiscovery"`
	RetryInterval       time.Duration `mapstructure:"retryInterval"`
	ScanDebounce        time.Duration `mapstructure:"scanDebounce"`
	GroupUpdateInterval time.Duration `mapstructure:"groupUpdateInterval"`
}

type MatchingConfig struct {
	Scheme string `mapstructure:"scheme"`
}

type SunConfig struct {
	GeoLocation string `mapstructure:"geoLocation"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

type Config struct {
	State    StateConfig    `mapstructure:"state"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Hue      HueConfig      `mapstructure:"hue"`
	Matching MatchingConfig `mapstructure:"matching"`
	Sun      SunConfig      `mapstructure:"sun"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("state.driver", constants.StateDriverFile)
	v.SetDefault("state.path", "huesence.json")
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.clientId", "huesence")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.qos", 1)
	v.SetDefault("mqtt.topicPrefix", "huesence")
	v.SetDefault("hue.deviceType", constants.DefaultDeviceType)
	v.SetDefault("hue.hosts", []string{})
	v.SetDefault("hue.portalDiscovery", true)
	v.SetDefault("hue.ssdpDiscovery", true)
	v.SetDefault("hue.retryInterval", constants.DefaultRetryInterval)
	v.SetDefault("hue.scanDebounce", constants.DefaultScanDebounce)
	v.SetDefault("hue.groupUpdateInterval", constants.DefaultGroupUpdateInterval)
	v.SetDefault("matching.scheme", constants.MatchSchemeExact)
	v.SetDefault("sun.geoLocation", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("metrics.listen", "")
}

// Load reads the config file at path, or searches the usual locations when path is
// empty. A missing file is fine, every key has a default and can be set from the
// environment (HUESENCE_MQTT_BROKER etc).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("huesence")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/huesence/")
		v.AddConfigPath("$HOME/.config/huesence/")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	// comma separated when coming from the environment
	cfg.Hue.Hosts = lo.Without(lo.FlatMap(cfg.Hue.Hosts, func(h string, _ int) []string {
		return lo.Map(strings.Split(h, ","), func(s string, _ int) string { return strings.TrimSpace(s) })
	}), "")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !lo.Contains([]string{constants.StateDriverFile, constants.StateDriverSQLite}, c.State.Driver) {
		return fmt.Errorf("invalid config: unknown state.driver %q", c.State.Driver)
	}
	if c.State.Path == "" {
		return fmt.Errorf("invalid config: state.path is required")
	}
	if c.MQTT.Broker == "" {
		return fmt.Errorf("invalid config: mqtt.broker is required")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("invalid config: mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	if !lo.Contains([]string{constants.MatchSchemeExact, constants.MatchSchemeDaytime}, c.Matching.Scheme) {
		return fmt.Errorf("invalid config: unknown matching.scheme %q", c.Matching.Scheme)
	}
	if c.Sun.GeoLocation != "" {
		if _, err := sun.ParseLocation(c.Sun.GeoLocation); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	if c.Hue.RetryInterval <= 0 {
		return fmt.Errorf("invalid config: hue.retryInterval must be positive")
	}
	if !lo.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("invalid config: unknown log.level %q", c.Log.Level)
	}
	if !c.Hue.PortalDiscovery && !c.Hue.SSDPDiscovery && len(c.Hue.Hosts) == 0 {
		return fmt.Errorf("invalid config: no bridge discovery enabled and no hue.hosts given")
	}
	return nil
}
