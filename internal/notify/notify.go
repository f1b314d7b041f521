package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"docmanage/internal/config"
)

// Notifier delivers the post-review notification. Delivery is best-effort:
// callers dispatch it detached from the request and swallow any error, so
// implementations must tolerate re-sends.
type Notifier interface {
	ReviewCompleted(ctx context.Context, documentID, status string) error
}

// LogNotifier is the default Notifier. It simulates delivery latency and
// then emits a JSON log line in place of an outbound email.
type LogNotifier struct {
	delay time.Duration
	enc   *json.Encoder
}

// NewLogNotifier builds a LogNotifier from configuration.
func NewLogNotifier(cfg config.NotifyConfig) *LogNotifier {
	return &LogNotifier{
		delay: time.Duration(cfg.DelaySec) * time.Second,
		enc:   json.NewEncoder(os.Stdout),
	}
}

var _ Notifier = (*LogNotifier)(nil)

// ReviewCompleted waits the configured delay and logs the notification.
// It aborts early if ctx is cancelled.
func (n *LogNotifier) ReviewCompleted(ctx context.Context, documentID, status string) error {
	if n.delay > 0 {
		select {
		case <-time.After(n.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	err := n.enc.Encode(map[string]any{
		"ts":          time.Now().UTC().Format(time.RFC3339Nano),
		"level":       "info",
		"event":       "document_review_notification",
		"document_id": documentID,
		"status":      status,
		"msg":         fmt.Sprintf("Document %s has been %s. Email sent to user.", documentID, status),
	})
	if err != nil {
		log.Printf("failed to write review notification: %v", err)
		return err
	}
	return nil
}
