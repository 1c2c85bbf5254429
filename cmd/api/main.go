package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/auth"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/config"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/db"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/events"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/events/kafka"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/logger"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/metrics"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/middleware"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/repository/postgres"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)

	var pub events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error("kafka close", "err", err)
			}
		}()
		pub = kp
		log.Info("kafka publisher enabled", "topic", cfg.KafkaTopic)
	}

	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)

	userSvc := services.NewUserService(repos.Users, repos.Workspaces, repos.Invitations, tm)
	workspaceSvc := services.NewWorkspaceService(repos.Workspaces, repos.Invitations, repos.Users)
	accountSvc := services.NewAccountService(repos.Accounts, repos.Workspaces)
	categorySvc := services.NewCategoryService(repos.Categories)
	txnSvc := services.NewTransactionService(repos.Transactions, repos.Accounts, repos.Categories, wp, pub)
	recurringSvc := services.NewRecurringService(repos.Recurrings, repos.Accounts, repos.Categories, wp, pub)
	reconcileSvc := services.NewReconciliationService(repos.Accounts, repos.Transactions, repos.BalanceUpdates, wp, pub)

	sched := worker.NewScheduler(recurringSvc, cfg.RecurringTick)
	sched.Start(ctx)
	defer sched.Stop()

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:         cfg,
		Auth:        middleware.NewAuthMiddleware(tm, cfg.Env),
		Memberships: middleware.NewMemberships(repos.Workspaces, cfg.MemberCacheTTL),
		Users:       userSvc,
		Workspaces:  workspaceSvc,
		Accounts:    accountSvc,
		Categories:  categorySvc,
		Txns:        txnSvc,
		Recurring:   recurringSvc,
		Reconcile:   reconcileSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
