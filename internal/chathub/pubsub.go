package chathub

import (
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/allworkdone/skills-exchange/internal/models"
)

// RunPubSubListener drains the room subscription into PubSubCh until the
// subscription is closed. Run it in its own goroutine alongside Run; tests
// feed PubSubCh directly instead.
func (m *Manager) RunPubSubListener(pubsub *redis.PubSub) {
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var ev models.Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			m.log.Warnw("dropping malformed room event", "channel", msg.Channel, "err", err)
			continue
		}
		m.PubSubCh <- ev
	}
}
