package bus

import (
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultPublishTimeout = 5 * time.Second
	// milliseconds
	defaultDisconnectQuiesce = 1000
	defaultKeepAlive         = 60 * time.Second
	maxReconnectInterval     = 2 * time.Minute
	maxQoS                   = 2
)

type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
	Topics   Topics
	// Observer clients (the control cli) leave the daemon's availability alone
	Observer bool
}

func buildClientOptions(o Options) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(o.Broker)
	opts.SetClientID(o.ClientID)

	if o.Username != "" {
		opts.SetUsername(o.Username)
		opts.SetPassword(o.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(maxReconnectInterval)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)

	// the broker flips availability to offline if we drop without saying goodbye
	if !o.Observer {
		opts.SetWill(o.Topics.Availability(), availabilityOffline, 1, true)
	}

	return opts
}
