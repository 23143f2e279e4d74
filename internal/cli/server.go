package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"quiz-setup-service/internal/app"
	"quiz-setup-service/internal/catalog"
	"quiz-setup-service/internal/config"
	memorypersist "quiz-setup-service/internal/infra/memory"
	pgcatalog "quiz-setup-service/internal/infra/postgres"
	redispersist "quiz-setup-service/internal/infra/redis"
	"quiz-setup-service/internal/store"
	transport "quiz-setup-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the setup wizard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader catalog.TemplateLoader = catalog.NewStaticTemplateLoader(catalog.BuiltinTemplates())
	if pool != nil {
		loader = pgcatalog.NewTemplateLoader(pool)
	}
	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	templates := catalog.NewTemplateRepository(loader, catalogTTL)

	sessionKey := cfg.Session.Key
	if sessionKey == "" {
		sessionKey = "default"
	}
	var persister store.SnapshotPersister = memorypersist.NewSnapshotPersister()
	if redisClient != nil {
		snapshotTTL := config.TTLDuration(cfg.Redis.TTL, 24*time.Hour)
		persister = redispersist.NewSnapshotPersister(redisClient, sessionKey, snapshotTTL)
	}

	cfgStore := store.NewConfigStore(ctx, persister, clockwork.NewRealClock(), log)
	service := app.NewSetupService(cfgStore, templates, catalog.RoundTypeDefaults, log)
	flow := app.NewFlowController(cfgStore,
		func() {
			// Completion hands the finished config to the external
			// deployment flow; here that boundary is a log event.
			log.Info().
				Str("preRoomId", cfgStore.SessionIDs().PreRoomID).
				Msg("setup wizard completed")
		},
		nil,
	)

	handler := transport.NewHandler(service, flow, log)
	wsHandler := transport.NewEstimateStreamHandler(service, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("/ws/estimate", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("port", finalPort).Msg("starting quiz setup service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutting down server")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
