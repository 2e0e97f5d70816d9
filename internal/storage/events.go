package storage

import (
	"encoding/json"
	"log"

	"buildtobond/backend/internal/models"
)

// eventsChannel is the Redis Pub/Sub channel bridging realtime events
// between server instances.
const eventsChannel = "chat:events"

// PublishEvent publishes an event envelope for other instances to fan out.
func (s *Service) PublishEvent(env models.EventEnvelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, eventsChannel, payload).Err()
}

// SubscribeEvents subscribes to the event bridge and returns a channel of
// decoded envelopes. The channel closes when the subscription ends.
func (s *Service) SubscribeEvents() <-chan models.EventEnvelope {
	out := make(chan models.EventEnvelope)
	pubsub := s.Redis.Subscribe(s.Ctx, eventsChannel)

	go func() {
		defer pubsub.Close()
		defer close(out)

		for msg := range pubsub.Channel() {
			var env models.EventEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("Error unmarshalling bridged event: %v", err)
				continue
			}
			out <- env
		}
	}()

	return out
}
