package services

import (
	"context"
	"log/slog"

	"github.com/yukikurage/twitter-clone-api/internal/events"
)

// publish sends an event after a committed write. Failures are logged only;
// the write has already succeeded.
func publish(ctx context.Context, publisher events.Publisher, subject string, event interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, subject, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "subject", subject, "error", err)
	}
}
