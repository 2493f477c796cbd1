package notifier

import (
	"io"
	"testing"
	"time"

	"github.com/finpulse/finpulse/internal/models"
	"github.com/sirupsen/logrus"
)

type captureSink struct {
	sent [][]models.Alert
}

func (c *captureSink) SendAlerts(to string, alerts []models.Alert) error {
	c.sent = append(c.sent, alerts)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestPublishDedup(t *testing.T) {
	alert := models.Alert{Type: models.AlertBudgetWarning, Title: "Budget running low", Message: "80% used"}

	t.Run("repeat within the window is suppressed", func(t *testing.T) {
		now := time.Date(2025, time.June, 18, 10, 0, 0, 0, time.UTC)
		sink := &captureSink{}
		n := NewWithClock(quietLogger(), sink, "user@example.com", func() time.Time { return now })

		if got := n.Publish([]models.Alert{alert}); len(got) != 1 {
			t.Fatalf("expected first publish to deliver, got %d", len(got))
		}

		now = now.Add(30 * time.Minute)
		if got := n.Publish([]models.Alert{alert}); len(got) != 0 {
			t.Errorf("expected repeat to be suppressed, got %d", len(got))
		}
		if len(sink.sent) != 1 {
			t.Errorf("expected a single delivery, got %d", len(sink.sent))
		}
	})

	t.Run("repeat after the window is delivered again", func(t *testing.T) {
		now := time.Date(2025, time.June, 18, 10, 0, 0, 0, time.UTC)
		n := NewWithClock(quietLogger(), nil, "", func() time.Time { return now })

		n.Publish([]models.Alert{alert})

		now = now.Add(DedupWindow + time.Minute)
		if got := n.Publish([]models.Alert{alert}); len(got) != 1 {
			t.Errorf("expected redelivery after the window, got %d", len(got))
		}
	})

	t.Run("same type with a different message is not a duplicate", func(t *testing.T) {
		now := time.Date(2025, time.June, 18, 10, 0, 0, 0, time.UTC)
		n := NewWithClock(quietLogger(), nil, "", func() time.Time { return now })

		n.Publish([]models.Alert{alert})

		other := models.Alert{Type: models.AlertBudgetWarning, Title: alert.Title, Message: "85% used"}
		if got := n.Publish([]models.Alert{other}); len(got) != 1 {
			t.Errorf("expected distinct message to be delivered, got %d", len(got))
		}
	})

	t.Run("nil sink still deduplicates", func(t *testing.T) {
		now := time.Date(2025, time.June, 18, 10, 0, 0, 0, time.UTC)
		n := NewWithClock(quietLogger(), nil, "", func() time.Time { return now })

		first := n.Publish([]models.Alert{alert})
		second := n.Publish([]models.Alert{alert})

		if len(first) != 1 || len(second) != 0 {
			t.Errorf("expected 1 then 0 deliveries, got %d and %d", len(first), len(second))
		}
	})
}
