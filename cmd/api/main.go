package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/carlosnavea/assethub-backend/api/controllers"
	"github.com/carlosnavea/assethub-backend/api/routes"
	"github.com/carlosnavea/assethub-backend/internal/assets"
	"github.com/carlosnavea/assethub-backend/internal/auth"
	"github.com/carlosnavea/assethub-backend/internal/categories"
	"github.com/carlosnavea/assethub-backend/internal/departments"
	"github.com/carlosnavea/assethub-backend/internal/identity"
	"github.com/carlosnavea/assethub-backend/internal/profiles"
	"github.com/carlosnavea/assethub-backend/internal/users"
	"github.com/carlosnavea/assethub-backend/pkg/auth/session"
	"github.com/carlosnavea/assethub-backend/pkg/config"
	"github.com/carlosnavea/assethub-backend/pkg/db"
	"github.com/carlosnavea/assethub-backend/pkg/logger"
	"github.com/carlosnavea/assethub-backend/pkg/metrics"
	"github.com/carlosnavea/assethub-backend/pkg/migrate"
	"github.com/carlosnavea/assethub-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		closeAll(logg, dbClient.Close)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		closeAll(logg, dbClient.Close)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		closeAll(logg, dbClient.Close, redisClient.Close)
		os.Exit(1)
	}

	directory := identity.NewGormDirectory(dbClient.DB(), cfg.Password)
	profileRepo := profiles.NewRepository(dbClient.DB())

	assetService, err := assets.NewService(assets.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create asset service", err)
		closeAll(logg, dbClient.Close, redisClient.Close)
		os.Exit(1)
	}
	categoryService, err := categories.NewService(categories.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		closeAll(logg, dbClient.Close, redisClient.Close)
		os.Exit(1)
	}
	departmentService, err := departments.NewService(departments.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create department service", err)
		closeAll(logg, dbClient.Close, redisClient.Close)
		os.Exit(1)
	}
	userService, err := users.NewService(users.ServiceParams{
		Directory:   directory,
		ProfileRepo: profileRepo,
		Logger:      logg,
		SyncConfig:  cfg.ProfileSync,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		closeAll(logg, dbClient.Close, redisClient.Close)
		os.Exit(1)
	}
	authService, err := auth.NewService(auth.ServiceParams{
		Directory:      directory,
		ProfileRepo:    profileRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		closeAll(logg, dbClient.Close, redisClient.Close)
		os.Exit(1)
	}

	actorEmail := func(ctx context.Context, userID string) (string, error) {
		id, err := uuid.Parse(userID)
		if err != nil {
			return "", err
		}
		profile, err := profileRepo.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		return profile.Email, nil
	}

	router := routes.NewRouter(routes.RouterParams{
		Config:         cfg,
		Logger:         logg,
		Metrics:        metrics.NewHTTPMetrics(),
		SessionChecker: sessionManager,
		HealthDeps: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
		ActorEmail:        actorEmail,
		AuthService:       authService,
		AssetService:      assetService,
		CategoryService:   categoryService,
		DepartmentService: departmentService,
		UserService:       userService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			closeAll(logg, dbClient.Close, redisClient.Close)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error shutting down server", err)
		}
	}

	closeAll(logg, dbClient.Close, redisClient.Close)
	logg.Info(ctx, "api server shut down gracefully")
}

func closeAll(logg *logger.Logger, closers ...func() error) {
	var err error
	for _, close := range closers {
		err = multierr.Append(err, close())
	}
	if err != nil {
		logg.Error(context.Background(), "error closing resources", err)
	}
}
