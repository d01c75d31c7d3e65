package console

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/racerready/racerready-manager-go/log"
	"github.com/racerready/racerready-manager-go/pkg/auth"
	oidcauth "github.com/racerready/racerready-manager-go/pkg/auth/impl/oidc"
	simpleauth "github.com/racerready/racerready-manager-go/pkg/auth/impl/simple"
	"github.com/racerready/racerready-manager-go/pkg/config"
	"github.com/racerready/racerready-manager-go/pkg/db/postgres"
	"github.com/racerready/racerready-manager-go/pkg/store"
	"github.com/racerready/racerready-manager-go/pkg/store/memory"
	pgstore "github.com/racerready/racerready-manager-go/pkg/store/postgres"
	"github.com/racerready/racerready-manager-go/pkg/utils"
)

func NewConsoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "starts the interactive log book console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startConsole(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&config.StoreBackend,
		"store-backend",
		"postgres",
		"document store backend (postgres, memory)")
	cmd.Flags().StringVar(&config.AuthProvider,
		"auth-provider",
		"simple",
		"identity provider (simple, oidc)")
	cmd.Flags().StringVar(&config.OIDCIssuer,
		"oidc-issuer", "",
		"issuer url for the oidc identity provider")
	cmd.Flags().StringVar(&config.OIDCClientID,
		"oidc-client-id", "",
		"client id for the oidc identity provider")
	cmd.Flags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"debug",
		"controls the log level for sql methods")
	cmd.Flags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	cmd.Flags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"otlp grpc endpoint for telemetry")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func startConsole(ctx context.Context) error {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	log.ResetDefault(logger)
	if config.LogConfig != "" {
		logCfg, err := log.LoadConfig(config.LogConfig)
		if err != nil {
			log.Warn("could not load log config", log.ErrorField(err))
		} else {
			log.InitLoggerManager(logger, logCfg)
		}
	}

	if config.EnableTelemetry {
		telemetry, err := config.SetupTelemetry(ctx)
		if err != nil {
			log.Warn("could not setup telemetry", log.ErrorField(err))
		} else {
			defer telemetry.Shutdown()
		}
	}

	docStore, err := setupStore(logger)
	if err != nil {
		return err
	}
	provider, err := setupAuthProvider(ctx)
	if err != nil {
		return err
	}

	app := newApp(docStore, provider, os.Stdin, os.Stdout)
	return app.run(ctx)
}

func setupStore(logger *log.Logger) (store.Store, error) {
	switch config.StoreBackend {
	case "memory":
		log.Info("using in-memory document store")
		return memory.New(), nil
	case "postgres":
		timeout, err := time.ParseDuration(config.WaitForServices)
		if err != nil {
			timeout = 60 * time.Second
		}
		postgresAddr := utils.ExtractFromDBURL(config.DB)
		if err := utils.WaitForTCP(postgresAddr, timeout); err != nil {
			return nil, fmt.Errorf("database not ready: %w", err)
		}
		pool := postgres.InitWithURL(
			config.DB,
			postgres.WithTracer(logger,
				parseLogLevel(config.SQLLogLevel, log.DebugLevel)))
		return pgstore.New(pool), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", config.StoreBackend)
	}
}

func setupAuthProvider(ctx context.Context) (auth.Provider, error) {
	switch config.AuthProvider {
	case "simple":
		return simpleauth.New(), nil
	case "oidc":
		return oidcauth.New(ctx, config.OIDCIssuer, config.OIDCClientID)
	default:
		return nil, fmt.Errorf("unknown auth provider %q", config.AuthProvider)
	}
}
