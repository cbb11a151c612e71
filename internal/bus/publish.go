package bus

import "fmt"

func (c *Client) Publish(topic string, payload []byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, c.opts.QoS, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// PublishAsync queues the message without waiting for the broker. Message handlers use it:
// with ordered delivery a handler blocked on a PUBACK holds up every later message.
func (c *Client) PublishAsync(topic string, payload []byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, c.opts.QoS, retained, payload)
	go func() {
		<-token.Done()
		if err := token.Error(); err != nil {
			c.logger.Warn("Async publish failed", "topic", topic, "err", err)
		}
	}()
	return nil
}
