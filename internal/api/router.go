package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halemd30/Bookmarks-server/internal/auth"
	"github.com/halemd30/Bookmarks-server/internal/logger"
	"github.com/halemd30/Bookmarks-server/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	BearerAuth *auth.BearerTokenMiddleware // nil disables the token check
	Bookmarks  store.BookmarkStoreIface
	Logger     logger.Logger
}

// NewAPIRouter creates the chi sub-router mounted at /api.
// All routes return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(jsonContentType)
	if deps.BearerAuth != nil {
		r.Use(deps.BearerAuth.Authenticate)
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	registerBookmarkRoutes(r, deps.Bookmarks, log)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
