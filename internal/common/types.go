package common

import (
	"strings"
	"time"
)

type NotificationType string

// every foreground push lands in the feed as a system notification
const SystemType NotificationType = "system"

// Permission is the outcome of asking the platform for notification permission.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

func (p Permission) Granted() bool {
	return p == PermissionGranted
}

const (
	// DefaultTitle is shown when an inbound payload carries no title.
	DefaultTitle = "New Message"
	// DefaultIcon is used by the background handler when the payload has no image.
	DefaultIcon = "/icon-192.png"
	// WebDeviceType tags tokens minted by the browser client.
	WebDeviceType = "web"
)

// MessageNotification is the display block of an inbound push.
type MessageNotification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	Image string `json:"image,omitempty"`
}

// PushPayload is the wire contract between the sender and the messaging
// SDK. Every field is optional.
type PushPayload struct {
	MessageID    string               `json:"messageId,omitempty"`
	Notification *MessageNotification `json:"notification,omitempty"`
	Data         map[string]string    `json:"data,omitempty"`
}

func (p PushPayload) Title() string {
	if p.Notification == nil {
		return ""
	}
	return strings.TrimSpace(p.Notification.Title)
}

func (p PushPayload) Body() string {
	if p.Notification == nil {
		return ""
	}
	return p.Notification.Body
}

func (p PushPayload) Image() string {
	if p.Notification == nil {
		return ""
	}
	return p.Notification.Image
}

// Link returns data.link, or nil when the payload carries none.
func (p PushPayload) Link() *string {
	link, ok := p.Data["link"]
	if !ok || link == "" {
		return nil
	}
	return &link
}

// NotificationEvent is what observers of the foreground router receive.
type NotificationEvent struct {
	Type    NotificationType
	Header  string
	Content string
	Link    *string
}

// FeedEntry is one item of the process-local notification feed.
type FeedEntry struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        NotificationType `json:"type"`
	Link        *string          `json:"link,omitempty"`
	ReceivedAt  time.Time        `json:"received_at"`
}

// DeviceToken associates a messaging token with the user who registered it.
type DeviceToken struct {
	UserID     string    `json:"user_id"`
	Token      string    `json:"-"`
	DeviceType string    `json:"device_type"`
	LastSeen   time.Time `json:"last_seen"`
}

// DisplayOptions mirrors the options of the platform notification primitive.
type DisplayOptions struct {
	Body string
	Icon string
	Link string
	Tag  string
}

// DeliveryRecord is one outgoing push as written to the delivery log.
type DeliveryRecord struct {
	UserID       string    `bson:"user_id"`
	Title        string    `bson:"title"`
	Body         string    `bson:"body"`
	Link         string    `bson:"link,omitempty"`
	TokenCount   int       `bson:"token_count"`
	SuccessCount int       `bson:"success_count"`
	FailureCount int       `bson:"failure_count"`
	FailedTokens []string  `bson:"failed_tokens,omitempty"`
	SentAt       time.Time `bson:"sent_at"`
}

type SendResult struct {
	TokenCount   int      `json:"token_count"`
	SuccessCount int      `json:"success_count"`
	FailureCount int      `json:"failure_count"`
	FailedTokens []string `json:"-"`
}
