//go:build wireinject
// +build wireinject

package wire

import (
	"dashnotify/internal/dbmysql"
	"dashnotify/internal/notif"
	"dashnotify/internal/push"

	"github.com/google/wire"
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		ProvideConfig,
		ProvideDatabaseConnection,
		dbmysql.NewDeviceRepository,
		ProvideMongoClient,
		ProvideDeliveryLog,
		ProvideFirebaseMessaging,
		ProvidePushSender,
		ProvideFeed,
		ProvideAlerter,
		ProvideRouter,
		ProvideRegistrar,
		wire.Bind(new(notif.TokenRegistrar), new(*push.Registrar)),
		ProvideIngressSource,
		notif.NewHTTPHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
