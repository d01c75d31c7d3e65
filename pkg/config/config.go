package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readability
var (
	DB                 string // connection string for the document database
	WaitForServices    string // duration to wait for other services to be ready
	LogLevel           string // sets the log level (zap log level values)
	SQLLogLevel        string // sets the log level for sql subsystem
	LogFormat          string // text vs json
	LogConfig          string // path to log config file
	MigrationSourceURL string // location of migration files
	EnableTelemetry    bool   // enable telemetry
	TelemetryEndpoint  string // endpoint for telemetry
	StoreBackend       string // document store backend (postgres, memory)
	AuthProvider       string // identity provider (simple, oidc)
	OIDCIssuer         string // issuer url for oidc identity provider
	OIDCClientID       string // client id for oidc identity provider
)

// Config holds configuration values used by the application at runtime
type Config struct {
	StoreBackend string
	AuthProvider string
}
