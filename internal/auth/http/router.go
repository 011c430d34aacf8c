package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/soloauth/soloauth/internal/auth/service"
	"github.com/soloauth/soloauth/internal/auth/store"
	"github.com/soloauth/soloauth/pkg/httpx"
	"github.com/soloauth/soloauth/pkg/jwtx"
	"github.com/soloauth/soloauth/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /v1/register", &RegisterHandler{SessionService: r.SessionService})
	r.Mux.Handle("POST /v1/login", &LoginHandler{SessionService: r.SessionService})

	secured := BearerAuth(r.codec, r.SessionService)

	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(&LogoutHandler{SessionService: r.SessionService}, secured),
	)
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(&UserInfoHandler{SessionService: r.SessionService}, secured),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
