package bgworker

import (
	"context"
	"log"

	"dashnotify/internal/common"
)

// LogDisplayer is the notification surface of a headless worker host.
type LogDisplayer struct{}

func (LogDisplayer) ShowNotification(_ context.Context, title string, opts common.DisplayOptions) error {
	log.Printf("[Worker] notification shown title=%q body=%q icon=%s link=%s tag=%s",
		title, opts.Body, opts.Icon, opts.Link, opts.Tag)
	return nil
}
