package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"instructchat/internal/handlers"
	"instructchat/internal/metrics"
	"instructchat/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Controller service.ChatController
	Session    handlers.SessionStatus

	AppTitle            string
	AppFooter           string
	DefaultMaxNewTokens int

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	limiter := NewRateLimiter(deps.RateLimitRPS, deps.RateLimitBurst)

	pageHandler := handlers.NewPageHandler(deps.Controller, deps.AppTitle, deps.AppFooter, deps.DefaultMaxNewTokens)
	chatHandler := handlers.NewChatHandler(deps.Controller, deps.DefaultMaxNewTokens)
	healthHandler := handlers.NewHealthHandler(deps.Session)

	r.Get("/", pageHandler.Index)
	r.With(limiter.Middleware).Post("/chat", pageHandler.Submit)
	r.Post("/clear", pageHandler.Clear)

	r.Route("/api", func(r chi.Router) {
		r.With(limiter.Middleware).Method(http.MethodPost, "/chat", chatHandler)
		r.Get("/history", chatHandler.History)
		r.Delete("/history", chatHandler.History)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
