package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultBehavior(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	config := LoadConfig()

	require.NotNil(t, config)

	assert.Equal(t, "localhost", config.Database.Host)
	assert.Equal(t, "3306", config.Database.Port)
	assert.Equal(t, "dashboard", config.Database.Username)
	assert.Equal(t, "restaurant", config.Database.DatabaseName)
	assert.Equal(t, 25, config.Database.MaxOpenConns)
	assert.Equal(t, 5, config.Database.MaxIdleConns)

	assert.Equal(t, "8080", config.Server.HTTPPort)
	assert.Equal(t, "7004", config.Server.NotifServicePort)
	assert.Equal(t, "8090", config.Server.WorkerPort)

	assert.Equal(t, "web", config.Notification.DeviceType)
	assert.Equal(t, "New Message", config.Notification.DefaultTitle)
	assert.Equal(t, "/icon-192.png", config.Notification.DefaultIcon)
	assert.Equal(t, 100, config.Notification.FeedCapacity)
	assert.True(t, config.Notification.Enabled)

	assert.False(t, config.Firebase.Enabled)
	assert.False(t, config.Firebase.Valid())
	assert.Empty(t, config.MongoDB.Host)
}

func TestLoadConfig_WithEnvironmentOverrides(t *testing.T) {
	testEnvVars := map[string]string{
		"MYSQL_HOST":                   "test-db-host",
		"MYSQL_PORT":                   "3307",
		"HTTP_PORT":                    "9000",
		"FIREBASE_API_KEY":             "api-key",
		"FIREBASE_MESSAGING_SENDER_ID": "sender",
		"FIREBASE_APP_ID":              "app",
		"FIREBASE_VAPID_KEY":           "vapid",
		"FIREBASE_ENABLED":             "true",
		"FEED_CAPACITY":                "10",
		"LOG_LEVEL":                    "debug",
	}
	for key, value := range testEnvVars {
		os.Setenv(key, value)
	}
	defer clearTestEnvVars()

	config := LoadConfig()

	assert.Equal(t, "test-db-host", config.Database.Host)
	assert.Equal(t, "3307", config.Database.Port)
	assert.Equal(t, "9000", config.Server.HTTPPort)
	assert.True(t, config.Firebase.Enabled)
	assert.True(t, config.Firebase.Valid())
	assert.Equal(t, 10, config.Notification.FeedCapacity)
	assert.True(t, config.Logging.Debug())
}

func TestLoadWorkerConfig_IndependentCopy(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()
	os.Setenv("FIREBASE_VAPID_KEY", "vapid")

	app := LoadConfig()
	worker := LoadWorkerConfig()

	assert.Equal(t, app.Firebase, worker.Firebase)
	assert.NotSame(t, app, worker)

	worker.Firebase.VAPIDKey = "changed"
	assert.Equal(t, "vapid", app.Firebase.VAPIDKey)
}

func TestFirebaseConfig_Valid(t *testing.T) {
	full := FirebaseConfig{APIKey: "k", SenderID: "s", AppID: "a", VAPIDKey: "v"}
	assert.True(t, full.Valid())

	noVAPID := full
	noVAPID.VAPIDKey = ""
	assert.False(t, noVAPID.Valid())

	noSender := full
	noSender.SenderID = ""
	assert.False(t, noSender.Valid())
}

func TestValidateServer_RequiresSecrets(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	// defaults leave both secrets empty, service must refuse to start
	config := LoadConfig()
	assert.ErrorIs(t, config.ValidateServer(), ErrMissingJWTSecret)

	os.Setenv("JWT_SECRET", "s3cret")
	config = LoadConfig()
	assert.ErrorIs(t, config.ValidateServer(), ErrMissingIngressSecret)

	os.Setenv("INGRESS_SECRET", "relay-secret")
	config = LoadConfig()
	assert.NoError(t, config.ValidateServer())
}

func TestValidateWorker_RequiresIngressSecret(t *testing.T) {
	worker := &Config{}
	assert.ErrorIs(t, worker.ValidateWorker(), ErrMissingIngressSecret)

	// worker never needs the jwt secret
	worker.Auth.IngressSecret = "relay-secret"
	assert.NoError(t, worker.ValidateWorker())
}

func TestDSN_Generation(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Host:         "test-host",
			Port:         "3307",
			Username:     "testuser",
			Password:     "testpass",
			DatabaseName: "testdb",
		},
	}

	expected := "testuser:testpass@tcp(test-host:3307)/testdb?charset=utf8mb4&parseTime=True&loc=Local"
	assert.Equal(t, expected, config.DSN())
}

func TestDSN_WithEmptyHostPort(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Username:     "testuser",
			Password:     "testpass",
			DatabaseName: "testdb",
		},
	}

	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=True&loc=Local"
	assert.Equal(t, expected, config.DSN())
}

func TestGetMongoURI(t *testing.T) {
	withAuth := &Config{MongoDB: MongoDBConfig{
		Host: "mongo-host", Port: "27017", Username: "u", Password: "p", Database: "db",
	}}
	assert.Equal(t, "mongodb://u:p@mongo-host:27017/db?authSource=admin", withAuth.GetMongoURI())

	noAuth := &Config{MongoDB: MongoDBConfig{Host: "mongo-host", Port: "27017", Database: "db"}}
	assert.Equal(t, "mongodb://mongo-host:27017/db", noAuth.GetMongoURI())
}

func TestGetEnvHelpers(t *testing.T) {
	os.Setenv("TEST_KEY", "test_value")
	os.Setenv("TEST_INT", "42")
	os.Setenv("INVALID_INT", "not-a-number")
	os.Setenv("TEST_BOOL", "true")
	defer func() {
		for _, k := range []string{"TEST_KEY", "TEST_INT", "INVALID_INT", "TEST_BOOL"} {
			os.Unsetenv(k)
		}
	}()

	assert.Equal(t, "test_value", getEnv("TEST_KEY", "default_value"))
	assert.Equal(t, "default_value", getEnv("NON_EXISTENT_KEY", "default_value"))
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 10))
	assert.Equal(t, 10, getEnvAsInt("INVALID_INT", 10))
	assert.True(t, getEnvAsBool("TEST_BOOL", false))
	assert.True(t, getEnvAsBool("MISSING_BOOL", true))
}

func clearTestEnvVars() {
	envKeys := []string{
		"MYSQL_HOST", "MYSQL_PORT", "MYSQL_USERNAME", "MYSQL_PASSWORD", "MYSQL_DATABASE",
		"MYSQL_MAX_OPEN_CONNS", "MYSQL_MAX_IDLE_CONNS",
		"MONGO_HOST", "MONGO_PORT", "MONGO_USERNAME", "MONGO_PASSWORD", "MONGO_DATABASE",
		"HTTP_PORT", "NOTIF_SERVICE_PORT", "WORKER_PORT", "APP_ENV",
		"FIREBASE_PROJECT_ID", "FIREBASE_API_KEY", "FIREBASE_MESSAGING_SENDER_ID", "FIREBASE_APP_ID",
		"FIREBASE_VAPID_KEY", "FIREBASE_CREDENTIALS_PATH", "FIREBASE_ENABLED",
		"PUSH_DEVICE_TYPE", "PUSH_DEFAULT_TITLE", "PUSH_DEFAULT_ICON", "FEED_CAPACITY", "PUSH_ENABLED",
		"JWT_SECRET", "JWT_ISSUER", "INGRESS_SECRET", "LOG_LEVEL",
	}

	for _, key := range envKeys {
		os.Unsetenv(key)
	}
}
