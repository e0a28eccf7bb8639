package fcm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dashnotify/internal/common"

	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
)

// FCM rejects multicast messages with more tokens than this.
const maxMulticastTokens = 500

var isStaleToken = func(err error) bool {
	return messaging.IsUnregistered(err) || errorutils.IsInvalidArgument(err)
}

type Sender struct {
	client      MulticastClient
	deviceRepo  common.DeviceRepository
	deliveryLog common.DeliveryLog
	defaultIcon string
	now         func() time.Time
}

// NewSender builds a sender. deliveryLog may be nil.
func NewSender(client MulticastClient, deviceRepo common.DeviceRepository, deliveryLog common.DeliveryLog, defaultIcon string) *Sender {
	if defaultIcon == "" {
		defaultIcon = common.DefaultIcon
	}
	return &Sender{
		client:      client,
		deviceRepo:  deviceRepo,
		deliveryLog: deliveryLog,
		defaultIcon: defaultIcon,
		now:         time.Now,
	}
}

// SendToUser pushes payload to every device registered for userID. Tokens
// the platform reports as unregistered are removed from the store.
func (s *Sender) SendToUser(ctx context.Context, userID string, payload common.PushPayload) (*common.SendResult, error) {
	if userID == "" {
		return nil, common.ErrEmptyUserID
	}
	if s.client == nil {
		return nil, common.ErrMessagingUnavailable
	}

	devices, err := s.deviceRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load devices: %w", err)
	}

	result := &common.SendResult{}
	if len(devices) == 0 {
		log.Printf("[FCM] no devices registered for user %s", userID)
		return result, nil
	}

	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.Token)
	}
	result.TokenCount = len(tokens)

	// fcm caps multicast at 500 tokens so we go batch by batch
	var stale []string
	for start := 0; start < len(tokens); start += maxMulticastTokens {
		end := min(start+maxMulticastTokens, len(tokens))
		batch := tokens[start:end]

		response, err := s.client.SendEachForMulticast(ctx, s.buildMessage(batch, payload))
		if err != nil {
			return nil, fmt.Errorf("failed to send FCM multicast message: %w", err)
		}

		result.SuccessCount += response.SuccessCount
		result.FailureCount += response.FailureCount
		for i, resp := range response.Responses {
			if resp.Success {
				continue
			}
			result.FailedTokens = append(result.FailedTokens, batch[i])
			if isStaleToken(resp.Error) {
				stale = append(stale, batch[i])
			} else {
				log.Printf("[FCM] failed to send to token %s: %v", truncate(batch[i]), resp.Error)
			}
		}
	}

	log.Printf("[FCM] Multicast sent to user %s: %d success, %d failures",
		userID, result.SuccessCount, result.FailureCount)

	//cleanup + bookkeeping, neither of these fails the send
	s.removeStale(ctx, stale)
	s.record(ctx, userID, payload, result)

	return result, nil
}

func (s *Sender) buildMessage(tokens []string, payload common.PushPayload) *messaging.MulticastMessage {
	title, body := payload.Title(), payload.Body()

	icon := payload.Image()
	if icon == "" {
		icon = s.defaultIcon
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title:    title,
			Body:     body,
			ImageURL: payload.Image(),
		},
		Data: payload.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: title,
				Body:  body,
				Icon:  icon,
				Tag:   payload.MessageID,
			},
		},
	}

	// Webpush only accepts absolute https click-through links.
	if link := payload.Link(); link != nil && strings.HasPrefix(*link, "https://") {
		message.Webpush.FCMOptions = &messaging.WebpushFCMOptions{Link: *link}
	}

	return message
}

func (s *Sender) removeStale(ctx context.Context, tokens []string) {
	for _, token := range tokens {
		if err := s.deviceRepo.DeleteToken(ctx, token); err != nil {
			log.Printf("[FCM] failed to remove stale token %s: %v", truncate(token), err)
			continue
		}
		log.Printf("[FCM] removed stale token %s", truncate(token))
	}
}

func (s *Sender) record(ctx context.Context, userID string, payload common.PushPayload, result *common.SendResult) {
	if s.deliveryLog == nil {
		return
	}

	rec := common.DeliveryRecord{
		UserID:       userID,
		Title:        payload.Title(),
		Body:         payload.Body(),
		TokenCount:   result.TokenCount,
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
		FailedTokens: result.FailedTokens,
		SentAt:       s.now().UTC(),
	}
	if link := payload.Link(); link != nil {
		rec.Link = *link
	}

	if err := s.deliveryLog.Record(ctx, rec); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[FCM] failed to record delivery: %v", err)
	}
}

func truncate(token string) string {
	if len(token) <= 20 {
		return token
	}
	return token[:20] + "..."
}
