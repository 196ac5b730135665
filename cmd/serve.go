// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/edumart/internal/authorization"
	"github.com/canonical/edumart/internal/config"
	"github.com/canonical/edumart/internal/db"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/monitoring/prometheus"
	"github.com/canonical/edumart/internal/pubsub"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/pkg/accounts"
	"github.com/canonical/edumart/pkg/admin"
	"github.com/canonical/edumart/pkg/authentication"
	"github.com/canonical/edumart/pkg/chat"
	"github.com/canonical/edumart/pkg/clubs"
	"github.com/canonical/edumart/pkg/confessions"
	"github.com/canonical/edumart/pkg/leaderboard"
	"github.com/canonical/edumart/pkg/ledger"
	"github.com/canonical/edumart/pkg/market"
	"github.com/canonical/edumart/pkg/notes"
	"github.com/canonical/edumart/pkg/notifications"
	"github.com/canonical/edumart/pkg/polls"
	"github.com/canonical/edumart/pkg/status"
	"github.com/canonical/edumart/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newLogger(specs *config.EnvSpec) *logging.Logger {
	if specs.LogFile != "" {
		return logging.NewLoggerWithFile(specs.LogLevel, specs.LogFile)
	}
	return logging.NewLogger(specs.LogLevel)
}

func newBroker(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (pubsub.BrokerInterface, error) {
	if specs.RedisAddr == "" {
		logger.Info("Using in-memory broker, live chat is limited to this instance")
		return pubsub.NewMemoryBroker(tracer, monitor, logger), nil
	}

	return pubsub.NewRedisBroker(
		pubsub.RedisConfig{
			Addr:     specs.RedisAddr,
			Password: specs.RedisPassword,
			DB:       specs.RedisDB,
			Prefix:   specs.RedisChannelPrefix,
		},
		tracer,
		monitor,
		logger,
	)
}

func serve() error {
	loadDotEnv()

	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := newLogger(specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("edumart", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TxTimeout:       specs.DBTxTimeout,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	broker, err := newBroker(specs, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create broker: %v", err)
	}
	defer broker.Close()

	tokens, err := authentication.NewJWTManager(specs.JWTSecret, specs.JWTIssuer, specs.TokenLifetime, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %v", err)
	}

	authorizer := authorization.NewAuthorizer(tracer, monitor, logger)

	ledgerService := ledger.NewService(s, tracer, monitor, logger)
	notificationService := notifications.NewService(s, authorizer, specs.NotificationFeedLimit, tracer, monitor, logger)
	chatService := chat.NewService(s, authorizer, broker, tracer, monitor, logger)
	hub := chat.NewHub(chatService, specs.CORSAllowedOrigins, tracer, monitor, logger)

	services := &web.Services{
		Accounts:      accounts.NewService(s, tokens, specs.StartingPoints, tracer, monitor, logger),
		Market:        market.NewService(s, authorizer, ledgerService, notificationService, tracer, monitor, logger),
		Notes:         notes.NewService(s, authorizer, ledgerService, notificationService, chatService, tracer, monitor, logger),
		Clubs:         clubs.NewService(s, authorizer, ledgerService, notificationService, tracer, monitor, logger),
		Confessions:   confessions.NewService(s, authorizer, tracer, monitor, logger),
		Polls:         polls.NewService(s, authorizer, ledgerService, notificationService, tracer, monitor, logger),
		Notifications: notificationService,
		Chat:          chatService,
		Leaderboard:   leaderboard.NewService(s, tracer, monitor, logger),
		Admin:         admin.NewService(s, authorizer, notificationService, tracer, monitor, logger),
	}

	router := web.NewRouter(
		services,
		hub,
		authentication.NewMiddleware(tokens, s, tracer, monitor, logger),
		specs.CORSAllowedOrigins,
		map[string]status.PingerInterface{"database": dbClient},
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}
	hub.Shutdown()

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
