package bus

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	availabilityOnline  = "online"
	availabilityOffline = "offline"
)

type Message struct {
	Topic    string
	Payload  []byte
	Retained bool
}

type MessageHandler func(msg Message) error

type subscription struct {
	topic   string
	qos     byte
	handler MessageHandler
}

// Client wraps paho with subscription tracking so subscriptions survive a reconnect.
type Client struct {
	logger *log.Logger
	client pahomqtt.Client
	opts   Options

	subMu         sync.RWMutex
	subscriptions map[string]subscription

	connMu    sync.RWMutex
	connected bool
}

// Connect dials the broker and waits for the first connection.
func Connect(logger *log.Logger, opts Options) (*Client, error) {
	if opts.QoS > maxQoS {
		return nil, ErrInvalidQoS
	}

	c := &Client{
		logger:        logger,
		opts:          opts,
		subscriptions: map[string]subscription{},
	}

	clientOpts := buildClientOptions(opts)
	clientOpts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.handleConnect()
	})
	clientOpts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.handleDisconnect(err)
	})
	clientOpts.SetReconnectingHandler(func(_ pahomqtt.Client, _ *pahomqtt.ClientOptions) {
		logger.Info("Reconnecting to broker", "broker", opts.Broker)
	})

	c.client = pahomqtt.NewClient(clientOpts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// the on-connect handler runs asynchronously
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	logger.Info("Connected to broker", "broker", opts.Broker)
	return c, nil
}

func (c *Client) handleConnect() {
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	c.restoreSubscriptions()
	if !c.opts.Observer {
		c.client.Publish(c.opts.Topics.Availability(), 1, true, availabilityOnline)
	}
}

func (c *Client) handleDisconnect(err error) {
	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()

	c.logger.Warn("Lost connection to broker", "err", err)
}

func (c *Client) restoreSubscriptions() {
	c.subMu.RLock()
	defer c.subMu.RUnlock()

	for _, sub := range c.subscriptions {
		c.client.Subscribe(sub.topic, sub.qos, c.wrapHandler(sub.handler))
	}
}

func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client.IsConnected()
}

// Close publishes the offline availability, unless an observer, and disconnects.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if c.IsConnected() && !c.opts.Observer {
		token := c.client.Publish(c.opts.Topics.Availability(), 1, true, availabilityOffline)
		token.WaitTimeout(defaultPublishTimeout)
	}
	c.client.Disconnect(defaultDisconnectQuiesce)

	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()
	return nil
}

func (c *Client) wrapHandler(handler MessageHandler) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("MQTT handler panic recovered", "topic", msg.Topic(), "panic", r)
			}
		}()

		err := handler(Message{Topic: msg.Topic(), Payload: msg.Payload(), Retained: msg.Retained()})
		if err != nil {
			c.logger.Warn("MQTT handler returned error", "topic", msg.Topic(), "err", err)
		}
	}
}
