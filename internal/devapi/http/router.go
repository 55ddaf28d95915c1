package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/fireme/internal/devapi/service"
	"github.com/aussiebroadwan/fireme/pkg/httpx"
	"github.com/aussiebroadwan/fireme/pkg/slogx"

	_ "github.com/aussiebroadwan/fireme/api/devapi" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	Service *service.Service
	Tokens  *service.TokenService
}

func NewRouter(svc *service.Service, tokens *service.TokenService, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		Service:      svc,
		Tokens:       tokens,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerCampaigns()
	r.registerPolls()
	r.registerQuestions()
	r.registerPlatforms()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			FireMe Development API
//	@version		0.1.0
//	@description	In-memory stand-in for the FireMe campaign backend. Tokens are SimpleJWT-style HS256 pairs and errors use DRF's shapes.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/fireme
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8000
//	@BasePath		/
//
//	@schemes		http
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with authentication and the per-user API limit.
func (r *Router) secured(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.Tokens.Access),
		httpx.RateLimitByUser(httpx.APILimit),
	)
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{Service: r.Service, Tokens: r.Tokens}

	// Credential endpoints share the strict per-IP limit
	limited := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.LoginLimit))
	}

	r.Mux.Handle("POST /accounts/register/{$}", limited(h.HandleRegister))
	r.Mux.Handle("POST /accounts/login/{$}", limited(h.HandleLogin))
	r.Mux.Handle("POST /accounts/token/refresh/{$}", limited(h.HandleRefresh))
	r.Mux.Handle("POST /accounts/token/verify", limited(h.HandleVerify))
}

func (r *Router) registerCampaigns() {
	h := &CampaignsHandler{Service: r.Service}

	r.Mux.Handle("GET /api/campaigns/{$}", r.secured(h.HandleList))
	r.Mux.Handle("POST /api/campaigns/{$}", r.secured(h.HandleCreate))
	r.Mux.Handle("GET /api/campaigns/{id}/{$}", r.secured(h.HandleGet))

	r.Mux.Handle("GET /api/queries/{$}", r.secured(h.HandleListQueries))
	r.Mux.Handle("POST /api/queries/{$}", r.secured(h.HandleCreateQuery))
}

func (r *Router) registerPolls() {
	h := &PollsHandler{Service: r.Service}

	r.Mux.Handle("GET /api/polls/{$}", r.secured(h.HandleList))
	r.Mux.Handle("POST /api/polls/{$}", r.secured(h.HandleCreate))
}

func (r *Router) registerQuestions() {
	h := &QuestionsHandler{Service: r.Service}

	r.Mux.Handle("GET /api/questions/{$}", r.secured(h.HandleList))
	r.Mux.Handle("POST /api/questions/{$}", r.secured(h.HandleCreate))
	r.Mux.Handle("PATCH /api/questions/{id}/{$}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/questions/{id}/{$}", r.secured(h.HandleDelete))
	r.Mux.Handle("GET /api/questions/{id}/answers/{$}", r.secured(h.HandleListAnswers))
	r.Mux.Handle("POST /api/questions/{id}/add_answer/{$}", r.secured(h.HandleAddAnswer))

	r.Mux.Handle("PATCH /api/answers/{id}/{$}", r.secured(h.HandleUpdateAnswer))
	r.Mux.Handle("DELETE /api/answers/{id}/{$}", r.secured(h.HandleDeleteAnswer))
}

func (r *Router) registerPlatforms() {
	h := &PlatformsHandler{Service: r.Service}

	r.Mux.Handle("GET /api/platforms/{$}", r.secured(h.HandleList))
	r.Mux.Handle("GET /api/platforms/connections/{$}", r.secured(h.HandleConnections))
	r.Mux.Handle("POST /api/platforms/{id}/app/{$}", r.secured(h.HandleUpsertApp))
	r.Mux.Handle("GET /api/platforms/{id}/app_info/{$}", r.secured(h.HandleAppInfo))
	r.Mux.Handle("POST /api/platforms/{id}/connect_credentials/{$}", r.secured(h.HandleConnect))
	r.Mux.Handle("POST /api/platforms/{id}/disconnect/{$}", r.secured(h.HandleDisconnect))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
}
