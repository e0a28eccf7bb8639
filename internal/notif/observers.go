package notif

import (
	"fmt"
	"log"

	"dashnotify/internal/common"
)

// FeedObserver appends routed events to the local notification feed.
type FeedObserver struct {
	appender common.FeedAppender
}

func NewFeedObserver(appender common.FeedAppender) *FeedObserver {
	return &FeedObserver{appender: appender}
}

func (f *FeedObserver) Name() string {
	return "feed_observer"
}

func (f *FeedObserver) Update(event common.NotificationEvent) error {
	if f.appender == nil {
		return fmt.Errorf("no feed appender")
	}

	f.appender.Append(common.FeedEntry{
		Title:       event.Header,
		Description: event.Content,
		Type:        event.Type,
		Link:        event.Link,
	})
	return nil
}

// AlertObserver raises one transient alert per routed event.
type AlertObserver struct {
	alerter common.Alerter
}

func NewAlertObserver(alerter common.Alerter) *AlertObserver {
	return &AlertObserver{alerter: alerter}
}

func (a *AlertObserver) Name() string {
	return "alert_observer"
}

func (a *AlertObserver) Update(event common.NotificationEvent) error {
	if a.alerter == nil {
		return nil
	}
	a.alerter.Alert(event.Header, event.Content)
	return nil
}

// LogAlerter writes alerts to the process log; it is the alert surface of
// a headless dashboard process.
type LogAlerter struct{}

func (LogAlerter) Alert(title, body string) {
	if body == "" {
		log.Printf("[Alert] %s", title)
		return
	}
	log.Printf("[Alert] %s: %s", title, body)
}
