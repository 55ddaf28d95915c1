package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Decode reads a notice published by a Channel.
func Decode(msg *message.Message) (Notice, error) {
	var n Notice
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		return Notice{}, fmt.Errorf("notify: decode %s: %w", msg.UUID, err)
	}
	return n, nil
}

// Listen subscribes to topic and calls fn for each notice until ctx is done
// or the subscription closes. Messages that fail to decode are dropped.
func Listen(ctx context.Context, sub message.Subscriber, topic string, fn func(Notice)) error {
	if topic == "" {
		topic = DefaultTopic
	}
	msgs, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("notify: subscribe %s: %w", topic, err)
	}

	go func() {
		for msg := range msgs {
			if n, err := Decode(msg); err == nil {
				fn(n)
			}
			msg.Ack()
		}
	}()
	return nil
}
