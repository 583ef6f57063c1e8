package adapthttp

import (
	"context"
	"net/http"

	"stride/internal/app"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services groups the application services the HTTP adapter drives.
type Services struct {
	Accounts   *app.AccountService
	Activities *app.ActivityService
	Likes      *app.LikeService
	Timeline   *app.TimelineService
}

// Options configures the optional parts of the server.
type Options struct {
	// WebDir, when set, is served as a single-page app at "/".
	WebDir string
	// CORSOrigin is sent as Access-Control-Allow-Origin; empty disables CORS.
	CORSOrigin string
	// SSO is nil when single sign-on is not configured.
	SSO *OIDCConfig
	// Ping reports storage health for /api/health.
	Ping func(ctx context.Context) error
	Log  *zap.Logger
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	accounts   *app.AccountService
	activities *app.ActivityService
	likes      *app.LikeService
	timeline   *app.TimelineService

	webDir     string
	corsOrigin string
	oidcConfig *OIDCConfig
	ping       func(ctx context.Context) error
	log        *zap.Logger
}

// New creates a Server wired to the given application services.
func New(svc Services, opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	sso := opts.SSO
	if sso == nil {
		sso = &OIDCConfig{}
	}
	return &Server{
		accounts:   svc.Accounts,
		activities: svc.Activities,
		likes:      svc.Likes,
		timeline:   svc.Timeline,
		webDir:     opts.WebDir,
		corsOrigin: opts.CORSOrigin,
		oidcConfig: sso,
		ping:       opts.Ping,
		log:        log,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", s.handleHealth)
	api.HandleFunc("GET /config", s.handleConfig)

	api.HandleFunc("POST /accounts", s.handleRegister)
	api.HandleFunc("POST /login", s.handleLogin)
	api.HandleFunc("GET /sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /sso/callback", s.handleSSOCallback)
	api.HandleFunc("GET /accounts/{id}/activities", s.handleAccountActivities)

	api.HandleFunc("POST /activities", s.handleCreateActivity)
	api.HandleFunc("GET /activities", s.handleListActivities)
	api.HandleFunc("PATCH /activities/{id}", s.handleUpdateActivity)
	api.HandleFunc("DELETE /activities/{id}", s.handleDeleteActivity)

	api.HandleFunc("POST /activities/{id}/like", s.handleLike)
	api.HandleFunc("DELETE /activities/{id}/like", s.handleUnlike)
	api.HandleFunc("GET /activities/{id}/likes", s.handleListLikes)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", withNoCache(api)))
	root.Handle("GET /metrics", promhttp.Handler())
	if s.webDir != "" {
		root.Handle("/", withNoCache(spaFromDisk(s.webDir)))
	}

	return s.loggingMiddleware(corsMiddleware(s.corsOrigin, root))
}
