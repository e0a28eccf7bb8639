package notif

import (
	"log"
	"sync"
	"sync/atomic"

	"dashnotify/internal/common"
	"dashnotify/internal/config"
)

// Router turns foreground push messages into a transient alert plus a
// local feed entry. Redelivered messages are not deduplicated.
type Router struct {
	manager      *NotificationManager
	defaultTitle string

	mu     sync.Mutex // serializes dispatch
	subMu  sync.Mutex
	active *subscription
}

// one live hookup to a message source
type subscription struct {
	closed      atomic.Bool
	unsubscribe common.Unsubscribe
}

func NewRouter(cfg *config.Config, appender common.FeedAppender, alerter common.Alerter) *Router {
	manager := NewNotificationManager()
	manager.Subscribe(NewAlertObserver(alerter))
	manager.Subscribe(NewFeedObserver(appender))

	title := cfg.Notification.DefaultTitle
	if title == "" {
		title = common.DefaultTitle
	}

	return &Router{
		manager:      manager,
		defaultTitle: title,
	}
}

// Listen subscribes to foreground messages from source. It returns nil
// when source is absent; callers must tolerate that. Calling Listen while
// a subscription is live returns the live handle.
func (r *Router) Listen(source common.MessageSource) common.Unsubscribe {
	if common.IsNilSource(source) {
		log.Println("[Router] messaging not available, foreground messages disabled")
		return nil
	}

	r.subMu.Lock()
	defer r.subMu.Unlock()

	if r.active != nil {
		return r.active.unsubscribe
	}

	sub := &subscription{}
	sdkUnsubscribe := source.OnMessage(func(payload common.PushPayload) {
		if sub.closed.Load() {
			return
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		// re-check, unsubscribe may have landed while we waited on the lock
		if sub.closed.Load() {
			return
		}
		r.dispatch(payload)
	})

	var once sync.Once
	sub.unsubscribe = func() {
		once.Do(func() {
			// mark closed and drop the handle together so Listen never hands
			// out a subscription that is already being torn down
			r.subMu.Lock()
			sub.closed.Store(true)
			if r.active == sub {
				r.active = nil
			}
			r.subMu.Unlock()

			if sdkUnsubscribe != nil {
				sdkUnsubscribe()
			}
			log.Println("[Router] foreground listener removed")
		})
	}
	r.active = sub

	log.Println("[Router] listening for foreground messages")
	return sub.unsubscribe
}

func (r *Router) dispatch(payload common.PushPayload) {
	event := r.eventFrom(payload)
	log.Printf("[Router] foreground message received: %s (id=%s)", event.Header, payload.MessageID)
	r.manager.Notify(event)
}

func (r *Router) eventFrom(payload common.PushPayload) common.NotificationEvent {
	title := payload.Title()
	if title == "" {
		title = r.defaultTitle
	}

	return common.NotificationEvent{
		Type:    common.SystemType,
		Header:  title,
		Content: payload.Body(),
		Link:    payload.Link(),
	}
}
