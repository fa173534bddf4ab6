package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fieldops/planboard/core/board"
	"github.com/fieldops/planboard/infra/logger"
	"github.com/fieldops/planboard/internal/eventbus"
)

// Notifier forwards board events to the affected technician's topic so
// field devices see schedule changes without polling.
type Notifier struct {
	client Publisher
	prefix string
	log    logger.Logger
}

// NewNotifier creates a Notifier publishing under the given topic
// prefix.
func NewNotifier(client Publisher, prefix string) *Notifier {
	return &Notifier{client: client, prefix: prefix, log: logger.New("mqtt_notifier")}
}

// Topic returns the per-technician assignment topic.
func (n *Notifier) Topic(technicianID string) string {
	return fmt.Sprintf("%s/technicians/%s/assignments", n.prefix, technicianID)
}

// Run consumes board events from the bus until the context is canceled.
// Publish failures are logged and dropped; the board never waits on the
// broker.
func (n *Notifier) Run(ctx context.Context, bus *eventbus.TypedBus[board.Event]) {
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			n.publish(ev)
		}
	}
}

func (n *Notifier) publish(ev board.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		n.log.Errorf("marshal board event: %v", err)
		return
	}
	topic := n.Topic(ev.Assignment.TechnicianID)
	if err := n.client.Publish(topic, payload); err != nil {
		n.log.Errorf("publish %s: %v", topic, err)
	}
}
