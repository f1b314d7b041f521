package notify

import (
	"context"
	"testing"
	"time"

	"docmanage/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLogNotifier_ReviewCompleted(t *testing.T) {
	n := NewLogNotifier(config.NotifyConfig{DelaySec: 0})

	err := n.ReviewCompleted(context.Background(), "doc-1", "approved")
	assert.NoError(t, err)
}

func TestLogNotifier_ContextCancelled(t *testing.T) {
	n := NewLogNotifier(config.NotifyConfig{DelaySec: 30})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := n.ReviewCompleted(ctx, "doc-1", "rejected")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
