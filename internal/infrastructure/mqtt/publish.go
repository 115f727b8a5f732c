package mqtt

import (
	"encoding/json"
	"fmt"
)

// Publish sends a message to the specified topic.
//
// Payloads of type []byte or string are sent as-is; anything else is
// marshaled to JSON. The call blocks until the broker acknowledges the
// publish or the timeout elapses.
func (c *Client) Publish(topic string, qos byte, retained bool, payload any) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	var data []byte
	switch p := payload.(type) {
	case []byte:
		data = p
	case string:
		data = []byte(p)
	default:
		var err error
		data, err = json.Marshal(p)
		if err != nil {
			return fmt.Errorf("%w: marshaling payload: %w", ErrPublishFailed, err)
		}
	}

	token := c.client.Publish(topic, qos, retained, data)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}
