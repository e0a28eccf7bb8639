// Package bgworker handles push messages that arrive while the dashboard
// is not in the foreground. It runs in its own process and shares no
// state with the main application; it only shows platform notifications.
package bgworker

import (
	"context"
	"log"

	"dashnotify/internal/common"
	"dashnotify/internal/config"
)

type Handler struct {
	displayer    common.Displayer
	defaultTitle string
	defaultIcon  string
}

func NewHandler(cfg *config.Config, displayer common.Displayer) *Handler {
	title := cfg.Notification.DefaultTitle
	if title == "" {
		title = common.DefaultTitle
	}
	icon := cfg.Notification.DefaultIcon
	if icon == "" {
		icon = common.DefaultIcon
	}

	return &Handler{
		displayer:    displayer,
		defaultTitle: title,
		defaultIcon:  icon,
	}
}

// Handle shows one background message. Display failures are logged only.
func (h *Handler) Handle(ctx context.Context, payload common.PushPayload) {
	title, opts := h.notificationFrom(payload)

	log.Printf("[Worker] background message received: %s", title)

	if err := h.displayer.ShowNotification(ctx, title, opts); err != nil {
		log.Printf("[Worker] failed to show notification: %v", err)
	}
}

// Listen subscribes Handle to source and returns the disposal handle.
func (h *Handler) Listen(ctx context.Context, source common.MessageSource) common.Unsubscribe {
	if common.IsNilSource(source) {
		log.Println("[Worker] no message source, background messages disabled")
		return nil
	}
	return source.OnMessage(func(payload common.PushPayload) {
		h.Handle(ctx, payload)
	})
}

func (h *Handler) notificationFrom(payload common.PushPayload) (string, common.DisplayOptions) {
	title := payload.Title()
	if title == "" {
		title = h.defaultTitle
	}

	icon := payload.Image()
	if icon == "" {
		icon = h.defaultIcon
	}

	opts := common.DisplayOptions{
		Body: payload.Body(),
		Icon: icon,
		Tag:  payload.MessageID,
	}
	if link := payload.Link(); link != nil {
		opts.Link = *link
	}

	return title, opts
}
