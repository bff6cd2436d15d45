package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/halemd30/Bookmarks-server/docs/swagger"
	"github.com/halemd30/Bookmarks-server/internal/api"
	"github.com/halemd30/Bookmarks-server/internal/auth"
	"github.com/halemd30/Bookmarks-server/internal/logger"
	"github.com/halemd30/Bookmarks-server/internal/mw"
	"github.com/halemd30/Bookmarks-server/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	DB             Pinger
	Bookmarks      store.BookmarkStoreIface
	BearerAuth     *auth.BearerTokenMiddleware
	Logger         logger.Logger
	RequestTimeout time.Duration
	RateLimit      mw.RateLimitConfig
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Log(log))
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics)

	// Operational endpoints stay outside the limiter and the request deadline.
	r.Get("/healthz", NewHealthHandler(deps.DB).Check)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/docs/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(deps.RateLimit))
		if deps.RequestTimeout > 0 {
			r.Use(middleware.Timeout(deps.RequestTimeout))
		}
		r.Mount("/api", api.NewAPIRouter(api.Deps{
			BearerAuth: deps.BearerAuth,
			Bookmarks:  deps.Bookmarks,
			Logger:     log,
		}))
	})

	return r
}
