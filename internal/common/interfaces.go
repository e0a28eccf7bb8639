package common

import (
	"context"
	"errors"
	"reflect"
)

var (
	ErrMessagingUnavailable = errors.New("messaging is not available")
	ErrEmptyToken           = errors.New("token is required")
	ErrEmptyUserID          = errors.New("user_id is required")
)

type Observer interface {
	Update(event NotificationEvent) error
	Name() string
}

// Unsubscribe disposes a message subscription. It may be nil when the
// subscription never happened.
type Unsubscribe func()

type MessageHandler func(payload PushPayload)

// MessageSource delivers inbound push messages to subscribed handlers.
type MessageSource interface {
	OnMessage(handler MessageHandler) Unsubscribe
}

//go:generate mockgen -destination=mocks/mock_messaging.go -package=mocks dashnotify/internal/common Messaging

// Messaging is the platform notification SDK capability surface.
type Messaging interface {
	RequestPermission(ctx context.Context) (Permission, error)
	GetToken(ctx context.Context, vapidKey string) (string, error)
	MessageSource
}

type DeviceRepository interface {
	Upsert(ctx context.Context, device *DeviceToken) error
	ByUserID(ctx context.Context, userID string) ([]*DeviceToken, error)
	DeleteToken(ctx context.Context, token string) error
}

// FeedAppender accepts entries for the local notification feed.
type FeedAppender interface {
	Append(entry FeedEntry)
}

// Alerter surfaces a short-lived alert to the user.
type Alerter interface {
	Alert(title, body string)
}

// Displayer shows a platform-level notification.
type Displayer interface {
	ShowNotification(ctx context.Context, title string, opts DisplayOptions) error
}

// DeliveryLog records outgoing pushes.
type DeliveryLog interface {
	Record(ctx context.Context, record DeliveryRecord) error
}

// PushSender delivers a payload to every device registered for a user.
type PushSender interface {
	SendToUser(ctx context.Context, userID string, payload PushPayload) (*SendResult, error)
}

// IsNilSource reports whether source is nil, including a typed nil pointer
// wrapped in the interface.
func IsNilSource(source MessageSource) bool {
	if source == nil {
		return true
	}
	v := reflect.ValueOf(source)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
