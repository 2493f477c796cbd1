// Package notifier delivers alert events to the user. The analytics
// engine re-emits the same alerts on every evaluation, so the notifier
// suppresses repeats of the same alert within a time window before
// handing the rest to the delivery sink.
package notifier

import (
	"sync"
	"time"

	"github.com/finpulse/finpulse/internal/models"
	"github.com/sirupsen/logrus"
)

// DedupWindow is how long a delivered alert suppresses identical repeats
const DedupWindow = 2 * time.Hour

// Sink receives the alerts that survive deduplication
type Sink interface {
	SendAlerts(to string, alerts []models.Alert) error
}

// Notifier deduplicates and delivers alerts
type Notifier struct {
	log       *logrus.Logger
	sink      Sink // nil disables outbound delivery
	recipient string
	now       func() time.Time

	mu        sync.Mutex
	delivered map[string]time.Time // alert type+message -> last delivery
}

// New creates a notifier. A nil sink logs alerts without delivering them.
func New(log *logrus.Logger, sink Sink, recipient string) *Notifier {
	return &Notifier{
		log:       log,
		sink:      sink,
		recipient: recipient,
		now:       time.Now,
		delivered: make(map[string]time.Time),
	}
}

// NewWithClock creates a notifier with a custom clock
func NewWithClock(log *logrus.Logger, sink Sink, recipient string, now func() time.Time) *Notifier {
	n := New(log, sink, recipient)
	n.now = now
	return n
}

// Publish delivers the alerts not seen within the dedup window and
// returns the ones that went out
func (n *Notifier) Publish(alerts []models.Alert) []models.Alert {
	now := n.now()

	n.mu.Lock()
	fresh := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		key := a.Type + "|" + a.Message
		if last, seen := n.delivered[key]; seen && now.Sub(last) < DedupWindow {
			continue
		}
		n.delivered[key] = now
		fresh = append(fresh, a)
	}
	for key, last := range n.delivered {
		if now.Sub(last) >= DedupWindow {
			delete(n.delivered, key)
		}
	}
	n.mu.Unlock()

	for _, a := range fresh {
		n.log.WithFields(logrus.Fields{"type": a.Type, "title": a.Title}).Info(a.Message)
	}

	if n.sink != nil && n.recipient != "" && len(fresh) > 0 {
		if err := n.sink.SendAlerts(n.recipient, fresh); err != nil {
			n.log.Errorf("Failed to deliver alerts: %v", err)
		}
	}

	return fresh
}
