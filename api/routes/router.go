package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carlosnavea/assethub-backend/api/controllers"
	"github.com/carlosnavea/assethub-backend/api/middleware"
	"github.com/carlosnavea/assethub-backend/internal/assets"
	authsvc "github.com/carlosnavea/assethub-backend/internal/auth"
	"github.com/carlosnavea/assethub-backend/internal/categories"
	"github.com/carlosnavea/assethub-backend/internal/departments"
	"github.com/carlosnavea/assethub-backend/internal/users"
	pkgAuth "github.com/carlosnavea/assethub-backend/pkg/auth"
	"github.com/carlosnavea/assethub-backend/pkg/auth/session"
	"github.com/carlosnavea/assethub-backend/pkg/config"
	"github.com/carlosnavea/assethub-backend/pkg/logger"
	"github.com/carlosnavea/assethub-backend/pkg/metrics"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	Metrics        *metrics.HTTPMetrics
	SessionChecker session.AccessSessionChecker
	HealthDeps     map[string]controllers.Pinger
	ActorEmail     controllers.ActorEmailLookup

	AuthService       authsvc.Service
	AssetService      assets.Service
	CategoryService   categories.Service
	DepartmentService departments.Service
	UserService       users.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.Metrics != nil {
		r.Use(middleware.Metrics(p.Metrics))
		r.Method(http.MethodGet, "/metrics", p.Metrics.Handler())
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.HealthDeps))
	})

	authn := middleware.Auth(cfg.JWT, p.SessionChecker, logg)
	adminOnly := middleware.RequireRole(pkgAuth.RoleAdmin, logg)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/signup", controllers.Signup(p.AuthService, logg))
		r.Post("/signin", controllers.Signin(p.AuthService, logg))
		r.With(authn).Post("/signout", controllers.Signout(p.AuthService, logg))
		r.With(authn).Get("/me", controllers.Me(p.AuthService, logg))
	})

	r.Route("/api/v1/assets", func(r chi.Router) {
		r.Use(authn)
		r.Get("/", controllers.AssetList(p.AssetService, logg))
		r.Get("/count", controllers.AssetCount(p.AssetService, logg))
		r.With(adminOnly).Post("/", controllers.AssetCreate(p.AssetService, logg))
		r.With(adminOnly).Delete("/{id}", controllers.AssetDelete(p.AssetService, logg))
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(authn)
		r.Get("/", controllers.CategoryList(p.CategoryService, logg))
		r.With(adminOnly).Post("/", controllers.CategoryCreate(p.CategoryService, p.ActorEmail, logg))
		r.With(adminOnly).Delete("/{id}", controllers.CategoryDelete(p.CategoryService, logg))
	})

	r.Route("/api/v1/departments", func(r chi.Router) {
		r.Use(authn)
		r.Get("/", controllers.DepartmentList(p.DepartmentService, logg))
		r.With(adminOnly).Post("/", controllers.DepartmentCreate(p.DepartmentService, logg))
		r.With(adminOnly).Delete("/{id}", controllers.DepartmentDelete(p.DepartmentService, logg))
	})

	r.Route("/api/admin/v1/users", func(r chi.Router) {
		r.Use(authn, adminOnly)
		r.Get("/", controllers.UserList(p.UserService, logg))
		r.Post("/", controllers.UserCreate(p.UserService, logg))
		r.Delete("/{id}", controllers.UserDelete(p.UserService, logg))
	})

	return r
}
