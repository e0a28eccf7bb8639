// Package fcm sends pushes to registered devices through Firebase Cloud Messaging.
package fcm

import (
	"context"
	"fmt"
	"log"

	"dashnotify/internal/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// MulticastClient is the part of *messaging.Client the sender uses.
type MulticastClient interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// NewMessagingClient returns nil without error when Firebase is disabled or
// no service account is configured.
func NewMessagingClient(ctx context.Context, cfg *config.Config) (*messaging.Client, error) {
	if !cfg.Firebase.Enabled {
		log.Println("[FCM] Firebase disabled")
		return nil, nil
	}
	if cfg.Firebase.CredentialsFilePath == "" {
		log.Println("[FCM] Firebase credentials not provided")
		return nil, nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: cfg.Firebase.ProjectID,
	}, option.WithCredentialsFile(cfg.Firebase.CredentialsFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return client, nil
}
