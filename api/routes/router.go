package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Developer-Chandan-Dev/fund-raising/api/controllers"
	"github.com/Developer-Chandan-Dev/fund-raising/api/middleware"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/auth"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/campaigns"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/community"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/dashboard"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/ledger"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/media"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/users"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/config"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/logger"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/metrics"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	DB    controllers.ReadinessProbe
	Redis controllers.ReadinessProbe
	GCS   controllers.ReadinessProbe

	RedisClient *redis.Client

	AuthService      auth.Service
	CampaignService  campaigns.Service
	LedgerService    ledger.Service
	UserService      users.Service
	CommunityService community.Service
	DashboardService dashboard.Service
	MediaService     media.Service

	MetricsRegistry *prometheus.Registry
	HTTPMetrics     *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadinessDeps(deps.DB, deps.Redis, deps.GCS)))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RedisClient, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, logg)).Get("/me", controllers.AuthMe(deps.AuthService, logg))
	})

	r.Route("/api/v1/campaigns", func(r chi.Router) {
		r.Get("/", controllers.CampaignsList(deps.CampaignService, logg))

		// "recent" must register before "{id}" so chi does not treat it
		// as an identifier.
		r.With(middleware.Auth(cfg.JWT, logg)).Get("/recent", controllers.CampaignsRecent(deps.CampaignService, logg))

		r.Get("/{id}", controllers.CampaignsGet(deps.CampaignService, logg))
		r.With(middleware.OptionalAuth(cfg.JWT, logg)).Post("/{id}/contribute", controllers.CampaignsContribute(deps.LedgerService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/", controllers.CampaignsCreate(deps.CampaignService, deps.MediaService, logg))
			r.Put("/{id}", controllers.CampaignsUpdate(deps.CampaignService, logg))
			r.Delete("/{id}", controllers.CampaignsDelete(deps.CampaignService, logg))
			r.Post("/{id}/save", controllers.CampaignsSaveToggle(deps.UserService, logg))
		})
	})

	r.Route("/api/v1/community", func(r chi.Router) {
		r.Get("/members", controllers.CommunityMembers(deps.CommunityService, logg))
		r.Get("/posts", controllers.CommunityPosts(deps.CommunityService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/posts", controllers.CommunityCreatePost(deps.CommunityService, logg))
			r.Post("/posts/{id}/like", controllers.CommunityLikeToggle(deps.CommunityService, logg))
		})
	})

	r.With(middleware.Auth(cfg.JWT, logg)).Post("/api/v1/users/{id}/follow", controllers.UsersFollowToggle(deps.UserService, logg))
	r.With(middleware.Auth(cfg.JWT, logg)).Get("/api/v1/dashboard/cards", controllers.DashboardCards(deps.DashboardService, logg))

	return r
}
