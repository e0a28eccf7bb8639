// Package push obtains messaging tokens from the platform SDK and records
// which signed-in user owns them.
package push

import (
	"context"
	"fmt"
	"log"
	"time"

	"dashnotify/internal/common"
	"dashnotify/internal/config"
)

type Registrar struct {
	messaging  common.Messaging
	deviceRepo common.DeviceRepository
	vapidKey   string
	configured bool
	deviceType string
	now        func() time.Time
}

// NewRegistrar wires the registration flow. messaging may be nil when the
// SDK failed to initialize; every call then short-circuits.
func NewRegistrar(cfg *config.Config, messaging common.Messaging, deviceRepo common.DeviceRepository) *Registrar {
	deviceType := cfg.Notification.DeviceType
	if deviceType == "" {
		deviceType = common.WebDeviceType
	}

	return &Registrar{
		messaging:  messaging,
		deviceRepo: deviceRepo,
		vapidKey:   cfg.Firebase.VAPIDKey,
		configured: cfg.Firebase.Valid(),
		deviceType: deviceType,
		now:        time.Now,
	}
}

// RequestPermission asks for notification permission, mints a token when
// granted and stores it for userID when one is given. It returns the token
// or nil. Nothing here returns an error to the caller.
func (r *Registrar) RequestPermission(ctx context.Context, userID *string) *string {
	if r == nil || r.messaging == nil {
		log.Println("[Push] messaging not available, skipping permission request")
		return nil
	}
	// all four client keys are needed before the sdk can mint anything
	if !r.configured {
		log.Println("[Push] messaging config incomplete (api key, sender id, app id, vapid key), skipping permission request")
		return nil
	}

	permission, err := r.messaging.RequestPermission(ctx)
	if err != nil {
		log.Printf("[Push] permission request failed: %v", err)
		return nil
	}
	if !permission.Granted() {
		log.Printf("[Push] WARN notification permission %s", permission)
		return nil
	}

	token, err := r.messaging.GetToken(ctx, r.vapidKey)
	if err != nil {
		log.Printf("[Push] failed to get messaging token: %v", err)
		return nil
	}
	if token == "" {
		log.Println("[Push] messaging returned an empty token")
		return nil
	}

	if userID != nil && *userID != "" {
		// The token stays minted either way; a failed save is retried on next load.
		if err := r.Register(ctx, *userID, token); err != nil {
			log.Printf("[Push] failed to save token for user %s: %v", *userID, err)
		}
	}

	return &token
}

// Register stores an already-minted token for userID.
func (r *Registrar) Register(ctx context.Context, userID, token string) error {
	if r == nil || r.deviceRepo == nil {
		return common.ErrMessagingUnavailable
	}
	if userID == "" {
		return common.ErrEmptyUserID
	}
	if token == "" {
		return common.ErrEmptyToken
	}

	device := &common.DeviceToken{
		UserID:     userID,
		Token:      token,
		DeviceType: r.deviceType,
		LastSeen:   r.now(),
	}

	if err := r.deviceRepo.Upsert(ctx, device); err != nil {
		return fmt.Errorf("register device token: %w", err)
	}

	log.Printf("[Push] token registered for user %s", userID)
	return nil
}
