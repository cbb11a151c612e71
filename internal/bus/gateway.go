package bus

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/huesence/internal/models"
)

// Sink receives the typed events decoded from the bus.
type Sink interface {
	OnOccupancy(event models.OccupancyEvent)
	OnName(sensorID string, name string)
	OnNight(night models.NightFlag)
	OnNightOnly(nightOnly bool)
	OnScanRequest()
	OnDisconnectRequest()
}

type transport interface {
	Subscribe(topic string, handler MessageHandler) error
	Publish(topic string, payload []byte, retained bool) error
	PublishAsync(topic string, payload []byte, retained bool) error
}

type recorder interface {
	MessageReceived(kind string, legacy bool)
}

type Gateway struct {
	logger   *log.Logger
	client   transport
	topics   Topics
	recorder recorder
}

func NewGateway(logger *log.Logger, client transport, topics Topics, recorder recorder) *Gateway {
	return &Gateway{
		logger:   logger,
		client:   client,
		topics:   topics,
		recorder: recorder,
	}
}

// Start subscribes to every current and legacy topic and dispatches to sink.
func (g *Gateway) Start(sink Sink) error {
	for _, topic := range g.topics.Subscriptions() {
		if err := g.client.Subscribe(topic, func(msg Message) error {
			return g.handle(sink, msg)
		}); err != nil {
			return fmt.Errorf("error subscribing to %s: %w", topic, err)
		}
	}
	return nil
}

func (g *Gateway) handle(sink Sink, msg Message) error {
	match, ok := g.topics.Match(msg.Topic)
	if !ok {
		g.logger.Debug("Gateway.handle: unrouted topic", "topic", msg.Topic)
		return nil
	}
	g.logger.Debug("Gateway.handle", "topic", msg.Topic, "kind", match.Kind, "payload", string(msg.Payload))
	g.recorder.MessageReceived(string(match.Kind), match.Legacy)

	if match.Legacy {
		g.forward(match.Current, msg)
	}

	switch match.Kind {
	case KindOccupancy:
		occupied, name, err := ParseOccupancy(msg.Payload)
		if err != nil {
			return err
		}
		sink.OnOccupancy(models.OccupancyEvent{SensorID: match.SensorID, Occupied: occupied, Name: name})

	case KindName:
		name, err := ParseName(msg.Payload)
		if err != nil {
			return err
		}
		sink.OnName(match.SensorID, name)

	case KindNight:
		night, err := ParseNight(msg.Payload)
		if err != nil {
			return err
		}
		sink.OnNight(night)

	case KindNightOnly:
		nightOnly, err := ParseBool(msg.Payload)
		if err != nil {
			return err
		}
		sink.OnNightOnly(nightOnly)

	case KindScan, KindDisconnect:
		// a retained request would fire again on every restart
		if msg.Retained || len(msg.Payload) == 0 {
			g.logger.Debug("Gateway.handle: ignoring retained or empty request", "topic", msg.Topic)
			return nil
		}
		requested, err := ParseBool(msg.Payload)
		if err != nil {
			return err
		}
		if !requested {
			return nil
		}
		if match.Kind == KindScan {
			sink.OnScanRequest()
		} else {
			sink.OnDisconnectRequest()
		}
	}
	return nil
}

// forward re-publishes a legacy message under its current topic. Current topics never
// match a legacy route so nothing is forwarded twice.
func (g *Gateway) forward(current string, msg Message) {
	if err := g.client.PublishAsync(current, msg.Payload, msg.Retained); err != nil {
		g.logger.Warn("unable to forward legacy message", "from", msg.Topic, "to", current, "err", err)
		return
	}
	g.logger.Debug("Gateway.forward", "from", msg.Topic, "to", current)
}

func (g *Gateway) PublishStatus(status models.PairingStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("error encoding status: %w", err)
	}
	return g.client.Publish(g.topics.Status(), payload, true)
}

// ClearStatus removes the retained status.
func (g *Gateway) ClearStatus() error {
	return g.client.Publish(g.topics.Status(), []byte{}, true)
}
