package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appauth "github.com/sidequesthq/sidequest/internal/application/auth"
	"github.com/sidequesthq/sidequest/internal/application/ports"
	appproject "github.com/sidequesthq/sidequest/internal/application/project"
	"github.com/sidequesthq/sidequest/internal/application/repometa"
	"github.com/sidequesthq/sidequest/internal/config"
	infraauth "github.com/sidequesthq/sidequest/internal/infrastructure/auth"
	"github.com/sidequesthq/sidequest/internal/infrastructure/cache"
	"github.com/sidequesthq/sidequest/internal/infrastructure/github"
	httprouter "github.com/sidequesthq/sidequest/internal/infrastructure/http"
	"github.com/sidequesthq/sidequest/internal/infrastructure/http/handlers"
	"github.com/sidequesthq/sidequest/internal/infrastructure/http/middleware"
	"github.com/sidequesthq/sidequest/internal/infrastructure/lockout"
	"github.com/sidequesthq/sidequest/internal/infrastructure/persistence/migrations"
	"github.com/sidequesthq/sidequest/internal/infrastructure/persistence/postgres"
	"github.com/sidequesthq/sidequest/internal/infrastructure/queue"
	"github.com/sidequesthq/sidequest/internal/infrastructure/security"
	"github.com/sidequesthq/sidequest/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()

	if err := migrations.Up(ctx, cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	issuer, err := infraauth.NewTokenIssuer(
		[]byte(cfg.JWT.Secret),
		cfg.JWT.Issuer,
		infraauth.WithTTL(time.Duration(cfg.JWT.ExpirySecs)*time.Second),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("create token issuer")
	}

	ghClient := github.NewClient(github.WithToken(cfg.GitHub.Token))
	repoTTL := time.Duration(cfg.GitHub.CacheTTLSecs) * time.Second
	var repoCache ports.RepoMetadataCache
	if redisClient != nil {
		repoCache = cache.NewRedisCache(redisClient, repoTTL)
	} else {
		repoCache = cache.NewMemoryCache(repoTTL)
	}
	repoMetaUC := repometa.NewFetchRepoMetadata(ghClient, repoCache, log)

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, repoMetaUC, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	var emitter ports.WebhookEmitter
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	lockoutStore := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSecs)

	registerUC := appauth.NewRegisterUser(userRepo, hasher, issuer)
	loginUC := appauth.NewLogin(userRepo, hasher, issuer, lockoutStore)
	createUC := appproject.NewCreateProject(projectRepo, taskEnqueuer)
	listUC := appproject.NewListProjects(projectRepo)
	getUC := appproject.NewGetProject(projectRepo)
	updateUC := appproject.NewUpdateProject(projectRepo, taskEnqueuer)
	deleteUC := appproject.NewDeleteProject(projectRepo)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, emitter, log)
	usersHandler := handlers.NewUsersHandler(userRepo)
	projectsHandler := handlers.NewProjectsHandler(createUC, listUC, getUC, updateUC, deleteUC, repoMetaUC, log)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.PerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.Secure(cfg.Secure.IsDevelopment)
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins)
	requireJWT := middleware.NewAuthValidator(issuer, log).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		ProjectsHandler: projectsHandler,
		HealthHandler:   healthHandler,
		RequireJWT:      requireJWT,
		Log:             log,
		Secure:          secureMiddleware,
		CORS:            corsMiddleware,
		IPRateLimit:     ipLimit,
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
