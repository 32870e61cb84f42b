package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hireova-backend/config"
	_ "hireova-backend/docs" // Important for Swagger
	v1 "hireova-backend/internal/delivery/http/v1"
	"hireova-backend/internal/domain"
	"hireova-backend/internal/repository/memory"
	"hireova-backend/internal/repository/postgres"
	"hireova-backend/internal/usecase"
	"hireova-backend/migrations"
	"hireova-backend/pkg/cache"
	"hireova-backend/pkg/database"
	"hireova-backend/pkg/logger"
	"hireova-backend/pkg/redis"
	"hireova-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// storage is the set of repositories the use cases run on.
type storage struct {
	orgs         domain.OrganizationRepository
	users        domain.UserRepository
	jobs         domain.JobRepository
	candidates   domain.CandidateRepository
	applications domain.ApplicationRepository
	tx           domain.TxManager
	pinger       usecase.Pinger
	sessions     *database.SessionProvider
	close        func()
}

// @title           Hireova API
// @version         1.0
// @description     Applicant tracking backend: organizations, users, jobs, candidates and applications.
// @host            localhost:8000
// @BasePath        /api/v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		logger.Log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred closes happen before main
// exits on a startup error.
func run(cfg *config.Config) error {
	logger.Log.Info("Starting "+cfg.AppName,
		"version", cfg.AppVersion,
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.StorageDriver,
		"cache", cfg.CacheBackend,
	)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	// 3. Setup Storage
	store, err := openStorage(startCtx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.close()

	// 4. Setup Redis and Cache
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(startCtx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			if cfg.CacheBackend == config.CacheBackendRedis {
				return fmt.Errorf("connect redis: %w", err)
			}
			logger.Log.Warn("Redis unavailable, rate limiting uses local counters", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	appCache, err := openCache(cfg, redisClient)
	if err != nil {
		return fmt.Errorf("set up cache: %w", err)
	}
	defer appCache.Close()

	// 5. Setup UseCases
	validate := validation.New()
	orgUC := usecase.NewOrganizationUsecase(store.orgs, store.tx, appCache, cfg.CacheTTL, validate)
	userUC := usecase.NewUserUsecase(store.users, store.orgs, store.tx, validate, cfg.BcryptCost)
	jobUC := usecase.NewJobUsecase(store.jobs, store.orgs, store.tx, validate)
	candidateUC := usecase.NewCandidateUsecase(store.candidates, store.tx, appCache, cfg.CacheTTL, validate)
	applicationUC := usecase.NewApplicationUsecase(store.applications, store.jobs, store.candidates, store.tx, validate)

	var cachePinger usecase.Pinger
	if cfg.CacheBackend != config.CacheBackendNone {
		cachePinger = appCache
	}
	var checks []usecase.Check
	if redisClient != nil && cfg.CacheBackend != config.CacheBackendRedis {
		checks = append(checks, usecase.Check{Name: "rate_limit", Pinger: redis.Pinger{Client: redisClient}})
	}
	healthUC := usecase.NewHealthUsecase(cfg.AppVersion, store.pinger, cachePinger, checks...)

	// 6. Setup Router
	deps := v1.RouterDeps{
		OrganizationUC: orgUC,
		UserUC:         userUC,
		JobUC:          jobUC,
		CandidateUC:    candidateUC,
		ApplicationUC:  applicationUC,
		HealthUC:       healthUC,
		Redis:          redisClient,
		Logger:         logger.Log,
		Config:         cfg,
	}
	if store.sessions != nil {
		deps.Sessions = store.sessions
	}
	router := v1.NewRouter(deps)

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		logger.Log.Info("Listening", "addr", srv.Addr, "docs", "/api/docs/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		store := memory.NewStore()
		return &storage{
			orgs:         store.Organizations(),
			users:        store.Users(),
			jobs:         store.Jobs(),
			candidates:   store.Candidates(),
			applications: store.Applications(),
			tx:           store.TxManager(),
			pinger:       store,
			close:        func() {},
		}, nil
	}

	pool, err := database.NewPostgresConnection(ctx, database.PoolConfig{
		URL:             cfg.DBUrl,
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnLifetime: cfg.DBMaxConnLifetime,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		ConnectTimeout:  cfg.DBConnectTimeout,
		SimpleProtocol:  cfg.DBSimpleProtocol,
	})
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		db := database.OpenSQLDB(pool)
		applied, err := database.Migrator{FS: migrations.FS}.Run(ctx, db)
		db.Close()
		if err != nil {
			pool.Close()
			return nil, err
		}
		for _, m := range applied {
			logger.Log.Info("Applied migration", "version", m.Version, "name", m.Name)
		}
	}

	sessions := database.NewSessionProvider(pool, cfg.DBAcquireTimeout)
	return &storage{
		orgs:         postgres.NewOrganizationRepository(pool),
		users:        postgres.NewUserRepository(pool),
		jobs:         postgres.NewJobRepository(pool),
		candidates:   postgres.NewCandidateRepository(pool),
		applications: postgres.NewApplicationRepository(pool),
		tx:           postgres.NewTxManager(pool),
		pinger:       sessions,
		sessions:     sessions,
		close:        pool.Close,
	}, nil
}

func openCache(cfg *config.Config, client *goredis.Client) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		if client == nil {
			return nil, errors.New("redis cache selected but no redis client")
		}
		return cache.NewRedisCache(client, "hireova"), nil
	case config.CacheBackendMemory:
		return cache.NewMemoryCache(uint64(cfg.CacheMemoryCapacity)), nil
	default:
		return cache.Noop{}, nil
	}
}
