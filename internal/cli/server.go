package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"bloom-quest-service/internal/activity"
	"bloom-quest-service/internal/assess"
	"bloom-quest-service/internal/config"
	"bloom-quest-service/internal/content"
	"bloom-quest-service/internal/emotion"
	"bloom-quest-service/internal/infra/memory"
	pgstore "bloom-quest-service/internal/infra/postgres"
	redicache "bloom-quest-service/internal/infra/redis"
	"bloom-quest-service/internal/results"
	transport "bloom-quest-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quest progression server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
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
		finalPort = "8090"
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var store memory.ContentSource
	var profiles assess.ProfileStore
	if pool != nil {
		pg := pgstore.NewStore(pool, cfg.ContentDomain())
		store = pg
		profiles = pg
	} else {
		// No database configured: serve the built-in content so the
		// service still demos end to end.
		mem := memory.NewStore()
		mem.SeedQuests("mars", "Kids", content.FallbackQuests())
		mem.SeedCards("mars", "Kids", "quest3", content.FallbackCards())
		mem.SeedQuestions("mars", "Kids", "quest4", content.FallbackQuestions())
		store = mem
		profiles = memory.NewProfileStore()
	}

	contentTTL := config.TTLDuration(cfg.Content.TTL, 10*time.Minute)
	var cached activity.ContentStore
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cached = redicache.NewContentCache(redisClient, store, contentTTL)
	} else {
		cached = memory.NewContentCache(store, contentTTL)
	}

	resultClient := results.NewClient(cfg.Results.URL)

	var assessClient *assess.Client
	if cfg.Assess.URL != "" {
		assessClient = assess.NewClient(cfg.Assess.URL, profiles)
	}

	var poller *emotion.Poller
	if cfg.Emotion.Enabled && cfg.Emotion.URL != "" {
		poller = emotion.NewPoller(cfg.Emotion.URL, config.TTLDuration(cfg.Emotion.PollInterval, 2*time.Second))
	}

	wsHandler := transport.NewWSHandler(cached, resultClient, cfg.Quiz.PassThreshold, poller)
	assessHandler := transport.NewAssessHandler(assessClient)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.Handle("/assess", assessHandler)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quest service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
