package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/osama171998/minna-app/internal/config"
	"github.com/osama171998/minna-app/internal/health"
	"github.com/osama171998/minna-app/internal/http/handler"
	"github.com/osama171998/minna-app/internal/http/middleware"
	"github.com/osama171998/minna-app/internal/http/response"
	"github.com/osama171998/minna-app/internal/service"
)

const maxBodyBytes = 1 << 20

// Dependencies carries everything the router mounts. All fields are
// required except Readiness, which may be nil in tests.
type Dependencies struct {
	Config           *config.Config
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	InstagramHandler *handler.InstagramHandler
	AnalysisHandler  *handler.AnalysisHandler
	AuthService      service.AuthServiceInterface
	AuthRateLimiter  *middleware.RateLimiter
	APIRateLimiter   *middleware.RateLimiter
	Readiness        *health.ProbeRunner
}

func New(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(deps.Config.CORSAllowedOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	r.Get("/health/live", func(w http.ResponseWriter, req *http.Request) {
		response.JSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, req *http.Request) {
		ready, results := deps.Readiness.Ready(req.Context())
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		response.JSON(w, req, status, map[string]any{"status": state, "checks": results})
	})

	r.Route("/api/v1", func(api chi.Router) {
		if deps.APIRateLimiter != nil {
			api.Use(deps.APIRateLimiter.Middleware())
		}

		api.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			response.JSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
		})

		api.Route("/auth", func(auth chi.Router) {
			if deps.AuthRateLimiter != nil {
				auth.Use(deps.AuthRateLimiter.Middleware())
			}
			auth.Post("/register", deps.AuthHandler.Register)
			auth.Post("/login/access-token", deps.AuthHandler.Login)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticate(deps.AuthService))

			protected.Route("/users", func(users chi.Router) {
				users.Get("/me", deps.UserHandler.Me)
				users.Put("/me", deps.UserHandler.UpdateMe)
				users.Delete("/me", deps.UserHandler.DeleteMe)
			})

			protected.Route("/instagram", func(ig chi.Router) {
				ig.Post("/scrape-by-date", deps.InstagramHandler.ScrapeByDate)
				ig.Post("/scrape-by-links", deps.InstagramHandler.ScrapeByLinks)
			})

			protected.Post("/analysis/", deps.AnalysisHandler.Analyze)
		})
	})

	var h http.Handler = r
	if deps.Config.OTELTracingEnabled || deps.Config.OTELMetricsEnabled {
		h = otelhttp.NewHandler(h, "http.server",
			otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
				return req.Method + " " + req.URL.Path
			}))
	}
	return h
}
