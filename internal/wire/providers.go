package wire

import (
	"context"
	"fmt"
	"log"

	"dashnotify/internal/common"
	"dashnotify/internal/config"
	"dashnotify/internal/dbmongo"
	"dashnotify/internal/dbmysql"
	"dashnotify/internal/fcm"
	"dashnotify/internal/ingress"
	"dashnotify/internal/notif"
	"dashnotify/internal/push"

	"firebase.google.com/go/v4/messaging"
	"gorm.io/gorm"
)

type Application struct {
	Config  *config.Config
	DB      *gorm.DB
	Mongo   *dbmongo.MongoClient
	Feed    *notif.Feed
	Router  *notif.Router
	Source  *ingress.Source
	Handler *notif.HTTPHandler
}

// ProvideConfig loads the main service config and refuses to go on
// without the auth secrets.
func ProvideConfig() (*config.Config, error) {
	cfg := config.LoadConfig()
	if err := cfg.ValidateServer(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func ProvideDatabaseConnection(cfg *config.Config) (*gorm.DB, error) {
	return dbmysql.NewMySQL(cfg)
}

// ProvideMongoClient returns nil when no Mongo host is configured or the
// server is unreachable; deliveries are then not logged.
func ProvideMongoClient(cfg *config.Config) *dbmongo.MongoClient {
	if cfg.MongoDB.Host == "" {
		log.Println("MongoDB not configured, delivery log disabled")
		return nil
	}

	client, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		log.Printf("MongoDB unavailable, delivery log disabled: %v", err)
		return nil
	}
	return client
}

func ProvideDeliveryLog(client *dbmongo.MongoClient) common.DeliveryLog {
	if client == nil {
		return nil
	}
	return dbmongo.NewDeliveryLog(client.Deliveries)
}

func ProvideFirebaseMessaging(cfg *config.Config) *messaging.Client {
	client, err := fcm.NewMessagingClient(context.Background(), cfg)
	if err != nil {
		log.Printf("FCM client unavailable: %v", err)
		return nil
	}
	return client
}

// ProvidePushSender returns a nil interface when FCM is unavailable so the
// send endpoint can report it.
func ProvidePushSender(
	cfg *config.Config,
	client *messaging.Client,
	deviceRepo common.DeviceRepository,
	deliveryLog common.DeliveryLog,
) common.PushSender {
	if client == nil {
		return nil
	}
	return fcm.NewSender(client, deviceRepo, deliveryLog, cfg.Notification.DefaultIcon)
}

func ProvideFeed(cfg *config.Config) *notif.Feed {
	return notif.NewFeed(cfg.Notification.FeedCapacity)
}

func ProvideAlerter() common.Alerter {
	return notif.LogAlerter{}
}

func ProvideRouter(cfg *config.Config, feed *notif.Feed, alerter common.Alerter) *notif.Router {
	return notif.NewRouter(cfg, feed, alerter)
}

func ProvideIngressSource(cfg *config.Config) *ingress.Source {
	return ingress.NewSource(cfg.Auth.IngressSecret)
}

// ProvideRegistrar builds a registrar without a messaging SDK; on the
// server tokens arrive already minted by the browser.
func ProvideRegistrar(cfg *config.Config, deviceRepo common.DeviceRepository) *push.Registrar {
	return push.NewRegistrar(cfg, nil, deviceRepo)
}
