package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quickplay-games/sessiond/internal/apperr"
	"github.com/quickplay-games/sessiond/internal/auth"
	"github.com/quickplay-games/sessiond/internal/health"
	"github.com/quickplay-games/sessiond/internal/jobs"
	"github.com/quickplay-games/sessiond/internal/jobs/handlers"
	"github.com/quickplay-games/sessiond/internal/lifecycle"
	"github.com/quickplay-games/sessiond/internal/localcache"
	"github.com/quickplay-games/sessiond/internal/notify"
	"github.com/quickplay-games/sessiond/internal/registry"
	"github.com/quickplay-games/sessiond/internal/session"
	"github.com/quickplay-games/sessiond/internal/store"
	"github.com/quickplay-games/sessiond/pkg/config"
	"github.com/quickplay-games/sessiond/pkg/graceful"
	"github.com/quickplay-games/sessiond/pkg/logger"
	"github.com/quickplay-games/sessiond/pkg/metrics"
	pkgredis "github.com/quickplay-games/sessiond/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		// no logger yet
		println("failed to load config:", err.Error())
		os.Exit(1)
	}

	sentryEnabled := cfg.Sentry.Enabled && cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			println("failed to init sentry:", err.Error())
			sentryEnabled = false
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	log := logger.New(logger.Options{
		Level:         logger.ParseLevel(cfg.LogLevel),
		File:          cfg.Logging.File,
		MaxSizeMB:     cfg.Logging.MaxSizeMB,
		MaxBackups:    cfg.Logging.MaxBackups,
		MaxAgeDays:    cfg.Logging.MaxAgeDays,
		SentryEnabled: sentryEnabled,
	})

	log.Info("starting sessiond", "env", cfg.AppEnv, "game_id", cfg.GameID)

	config.Watch(v, log, func(updated *config.Config) {
		log.Info("runtime config updated", "log_level", updated.LogLevel)
	})

	rdb, err := pkgredis.New(ctx, pkgredis.Config{
		Addr:            cfg.Redis.Addr,
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
		IdleTimeout:     cfg.Redis.IdleTimeout,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
	})
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	cacheStore, err := localcache.New(cfg.Cache.Dir, log)
	if err != nil {
		log.Error("failed to open local cache", "dir", cfg.Cache.Dir, "error", err)
		os.Exit(1)
	}

	store.RegisterRequestRecorder(metrics.RecordStoreRequest)

	storeClient := store.NewRedisStore(rdb.Client, cfg.Store.Namespace, log)
	reg := registry.New(log)
	identity := auth.NewTokenFileProvider(cfg.Auth.IDTokenPath, cfg.Auth.Leeway, log)
	dispatcher := notify.NewDispatcher(log)

	errHandler := apperr.NewHandler(log, sentryEnabled)

	sess := session.New(log, storeClient, reg, cacheStore, identity, dispatcher, cfg.GameID)

	// Seed the screens from the last-known snapshots before any network call.
	sess.PrepareFromLocalStorage()

	events, cancelEvents := sess.Events(64)
	go func() {
		for event := range events {
			log.Debug("session event", "event", string(event.Name))
		}
	}()

	startObservations(ctx, log, errHandler, sess)

	err = apperr.WithRetry(ctx, func() error {
		_, ferr := sess.FetchBlitzDefinitions(ctx)
		return ferr
	})
	if err != nil {
		errHandler.Handle(ctx, err)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	manager := jobs.NewManager(redisOpt, log)
	if task, terr := jobs.NewSessionRefreshTask(false, true); terr == nil {
		if _, qerr := manager.Enqueue(ctx, task); qerr != nil {
			log.Warn("failed to enqueue warmup refresh", "error", qerr)
		}
	}

	scheduler := jobs.NewScheduler(redisOpt, cfg.Jobs.BlitzRefreshSpec, cfg.Jobs.HistoryRefreshSpec, log)
	if err := scheduler.RegisterTasks(); err != nil {
		log.Error("failed to register scheduled tasks", "error", err)
		os.Exit(1)
	}
	scheduler.Run()

	worker := jobs.NewWorker(redisOpt, cfg.Jobs.Concurrency, log)
	worker.RegisterHandler(jobs.TaskTypeBlitzRefresh, handlers.NewBlitzRefreshHandler(sess, log))
	worker.RegisterHandler(jobs.TaskTypeSessionRefresh, handlers.NewSessionRefreshHandler(sess, log))
	go func() {
		if err := worker.Run(); err != nil {
			log.Error("jobs worker stopped", "error", err)
		}
	}()

	checker := health.NewChecker(log)
	checker.AddCheck("redis", rdb)

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/healthz", checker.Handler())

		srv := graceful.New(log, cfg.Metrics.Addr, mux, 5*time.Second)
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				log.Error("metrics server stopped", "error", err)
			}
		}()
	}

	shutdown := lifecycle.NewShutdown(log, 10*time.Second)
	shutdown.Register("redis", func(context.Context) error { return rdb.Close() })
	shutdown.Register("jobs-manager", func(context.Context) error { return manager.Close() })
	shutdown.Register("jobs-worker", func(context.Context) error { worker.Shutdown(); return nil })
	shutdown.Register("jobs-scheduler", func(context.Context) error { scheduler.Shutdown(); return nil })
	shutdown.Register("subscriptions", func(context.Context) error { reg.RemoveAll(); return nil })
	shutdown.Register("events", func(context.Context) error { cancelEvents(); return nil })

	<-ctx.Done()
	log.Info("sessiond shutting down")

	if err := shutdown.Execute(context.Background()); err != nil {
		log.Error("shutdown completed with errors", "error", err)
	}
}

// startObservations registers every live subscription the session keeps while
// the player is signed in. Each call is idempotent; failures are logged and
// the daemon keeps running on cached state.
func startObservations(ctx context.Context, log *slog.Logger, errHandler *apperr.Handler, sess *session.Session) {
	observations := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"user", sess.ObserveUser},
		{"public_info", sess.ObservePublicInfo},
		{"host_config", sess.ObserveHostConfig},
		{"lockdown", sess.ObserveLockdown},
		{"missions", sess.ObserveMissions},
		{"game_history", sess.ObserveGameHistory},
		{"deposit_history", sess.ObserveDepositHistory},
		{"other_games", sess.ObserveOtherGames},
	}

	for _, obs := range observations {
		if err := obs.fn(ctx); err != nil {
			errHandler.Handle(ctx, err)
			log.Warn("failed to start observation", "name", obs.name, "error", err)
		}
	}
}
