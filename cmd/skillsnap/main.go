package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/auth"
	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/application/profile"
	"github.com/devunionorg/skillsnap/internal/application/retention"
	"github.com/devunionorg/skillsnap/internal/config"
	infraauth "github.com/devunionorg/skillsnap/internal/infrastructure/auth"
	httprouter "github.com/devunionorg/skillsnap/internal/infrastructure/http"
	"github.com/devunionorg/skillsnap/internal/infrastructure/http/handlers"
	"github.com/devunionorg/skillsnap/internal/infrastructure/http/middleware"
	"github.com/devunionorg/skillsnap/internal/infrastructure/lockout"
	"github.com/devunionorg/skillsnap/internal/infrastructure/persistence/postgres"
	"github.com/devunionorg/skillsnap/internal/infrastructure/queue"
	"github.com/devunionorg/skillsnap/internal/infrastructure/security"
	"github.com/devunionorg/skillsnap/internal/infrastructure/storage"
	"github.com/devunionorg/skillsnap/internal/infrastructure/webhook"
)

const apiVersion = "1"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := newLogger(cfg)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	pool, err := connectDB(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrate database")
		}
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

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	userRepo := postgres.NewUserRepository(pool)
	tokenStore := postgres.NewTokenStore(pool)
	passwordResetStore := postgres.NewPasswordResetRepository(pool)
	profileStore := postgres.NewProfileRepository(pool)

	go retention.Schedule(ctx,
		time.Duration(cfg.Retention.PurgeInterval)*time.Hour,
		time.Duration(cfg.Retention.KeepFor)*time.Hour,
		log, tokenStore, passwordResetStore)

	var webhookEmitter ports.WebhookEmitter = webhook.NewNoopEmitter()
	if cfg.Webhook.URL != "" {
		webhookEmitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, webhook.WithSecret(cfg.Webhook.Secret))
	}

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt := redisClient.Options()
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Username: redisOpt.Username, Password: redisOpt.Password, DB: redisOpt.DB, TLSConfig: redisOpt.TLSConfig}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, cfg.Worker.Concurrency, webhookEmitter, cfg.IsDevelopment(), log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer(log)
	}

	var lockoutStore ports.LoginLockoutStore
	switch {
	case cfg.Lockout.MaxAttempts <= 0:
	case redisClient != nil:
		lockoutStore = lockout.NewRedisStore(redisClient, "skillsnap:lockout", cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds, log)
	default:
		lockoutStore = lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)
	}

	var mediaStore ports.MediaStore = storage.DisabledStore{}
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3Store(storage.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
			KeyPrefix:       cfg.S3.KeyPrefix,
			PublicRead:      cfg.S3.PublicRead,
		}, storage.S3Options{
			MaxUploadBytes: cfg.Media.MaxUploadBytes,
			MaxDimension:   cfg.Media.AvatarMaxDim,
			Quality:        cfg.Media.AvatarQuality,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create media store")
		}
		mediaStore = s3Store
	} else {
		log.Warn().Msg("S3_BUCKET not set; avatar uploads are disabled")
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	privateKey, ephemeral, err := infraauth.LoadSigningKey(cfg.JWT.PrivateKeyPEM, cfg.JWT.PrivateKeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	if ephemeral {
		log.Warn().Msg("no JWT key configured; using an ephemeral key, tokens will not survive a restart")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	registerUC := auth.NewRegisterUser(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, tokenStore, lockoutStore, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	refreshUC := auth.NewRefresh(issuer, tokenStore, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	logoutUC := auth.NewLogout(tokenStore)
	forgotPasswordUC := auth.NewForgotPassword(passwordResetStore, userRepo, taskEnqueuer, cfg.PasswordReset.BaseURL, cfg.PasswordReset.Expiry)
	resetPasswordUC := auth.NewResetPassword(passwordResetStore, userRepo, hasher, tokenStore)
	currentUserUC := auth.NewCurrentUser(issuer, userRepo)
	authGateway := auth.NewGateway(registerUC, loginUC, logoutUC, forgotPasswordUC, currentUserUC)

	saveProfileUC := profile.NewSaveProfile(profileStore, mediaStore, taskEnqueuer, log)
	profileHandler := handlers.NewProfileHandler(handlers.ProfileHandlerConfig{
		Users:          userRepo,
		Get:            profile.NewGetProfile(profileStore),
		Setup:          profile.NewSetupProfile(profileStore, taskEnqueuer, log),
		Edit:           profile.NewEditProfile(profileStore, saveProfileUC, log),
		Delete:         profile.NewDeleteProfile(profileStore, taskEnqueuer, log),
		CheckUsername:  profile.NewCheckUsername(profileStore),
		MaxUploadBytes: cfg.Media.MaxUploadBytes,
	}, log)

	rateCfg := middleware.RateLimitConfig{
		RatePerIP:   cfg.RateLimit.PerIP,
		RatePerUser: cfg.RateLimit.PerUser,
		Redis:       redisClient,
	}
	ipLimit, err := middleware.NewIPRateLimiter(rateCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	userLimit, err := middleware.NewUserRateLimiter(rateCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create user rate limiter")
	}
	authValidator := middleware.NewAuthValidator(issuer)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    handlers.NewAuthHandler(authGateway, refreshUC, resetPasswordUC, log),
		HealthHandler:  healthHandler,
		UsersHandler:   handlers.NewUsersHandler(userRepo, log),
		ProfileHandler: profileHandler,
		RequireJWT:     authValidator.Handler,
		OptionalJWT:    authValidator.Optional,
		Log:            log,
		Secure:         middleware.NewSecure(middleware.SecureOptions(cfg.IsDevelopment())),
		CORS:           middleware.CORS(cfg.CORS.AllowedOrigins),
		IPRateLimit:    ipLimit,
		UserRateLimit:  userLimit,
		APIVersion:     apiVersion,
		Metrics:        cfg.Server.Metrics,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.IsDevelopment() || cfg.Log.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Str("service", "skillsnap").Logger()
}

// connectDB opens the pool and retries the first ping with exponential
// backoff, so the API can start alongside its database.
func connectDB(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, err
	}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = time.Duration(cfg.ConnectTimeout) * time.Second
	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return pool.Ping(pingCtx)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("database not ready")
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
