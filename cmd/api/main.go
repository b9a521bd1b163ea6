package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Developer-Chandan-Dev/fund-raising/api/routes"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/auth"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/campaigns"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/community"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/dashboard"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/ledger"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/media"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/users"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/config"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/logger"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/metrics"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/migrate"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/redis"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/storage/gcs"
)

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	// Object storage is optional. Without a bucket, campaigns still work
	// but image uploads are rejected.
	var gcsClient *gcs.Client
	var mediaService media.Service
	if cfg.GCS.BucketName != "" {
		gcsClient, err = gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap gcs", err)
			os.Exit(1)
		}
		mediaService, err = media.NewService(media.ServiceParams{Store: gcsClient, Media: cfg.Media})
		if err != nil {
			logg.Error(context.Background(), "failed to create media service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "gcs bucket not configured, image uploads disabled")
	}

	userRepo := users.NewRepository(dbClient.DB())
	campaignRepo := campaigns.NewRepository(dbClient.DB())
	ledgerRepo := ledger.NewRepository(dbClient.DB())
	communityRepo := community.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	campaignService, err := campaigns.NewService(campaigns.ServiceParams{
		Repo:         campaignRepo,
		DonationRepo: ledgerRepo,
		ImageStore:   mediaService,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create campaign service", err)
		os.Exit(1)
	}

	ledgerService, err := ledger.NewService(ledger.ServiceParams{
		Repo:         ledgerRepo,
		CampaignRepo: campaignRepo,
		UserRepo:     userRepo,
		Tx:           dbClient,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{
		UserRepo:     userRepo,
		CampaignRepo: campaignRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	communityService, err := community.NewService(community.ServiceParams{
		Repo:     communityRepo,
		UserRepo: userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create community service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		CampaignRepo: campaignRepo,
		UserRepo:     userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	deps := routes.Deps{
		DB:               dbClient,
		Redis:            redisClient,
		RedisClient:      redisClient,
		AuthService:      authService,
		CampaignService:  campaignService,
		LedgerService:    ledgerService,
		UserService:      userService,
		CommunityService: communityService,
		DashboardService: dashboardService,
		MediaService:     mediaService,
		MetricsRegistry:  registry,
		HTTPMetrics:      httpMetrics,
	}
	if gcsClient != nil {
		deps.GCS = gcsClient
	}

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
		Handler: routes.NewRouter(cfg, logg, deps),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
