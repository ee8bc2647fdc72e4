package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/infrastructure/http/handlers"
	"github.com/devunionorg/skillsnap/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	HealthHandler  *handlers.HealthHandler
	UsersHandler   *handlers.UsersHandler
	ProfileHandler *handlers.ProfileHandler
	RequireJWT     func(http.Handler) http.Handler // JWT auth for /me/*
	OptionalJWT    func(http.Handler) http.Handler // viewer identity on public reads
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	CORS           func(http.Handler) http.Handler
	IPRateLimit    func(http.Handler) http.Handler
	UserRateLimit  func(http.Handler) http.Handler
	APIVersion     string
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.APIVersion != "" {
		r.Use(middleware.APIVersion(cfg.APIVersion))
	}
	r.Use(chimid.AllowContentType("application/json", "multipart/form-data"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}
	optional := orPassThrough(cfg.OptionalJWT)
	userLimit := orPassThrough(cfg.UserRateLimit)

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	if cfg.AuthHandler != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/refresh", cfg.AuthHandler.Refresh)
			r.Post("/logout", cfg.AuthHandler.Logout)
			r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
			r.Post("/reset-password", cfg.AuthHandler.ResetPassword)
			r.Get("/session", cfg.AuthHandler.Session)
		})
	}

	if cfg.ProfileHandler != nil {
		r.Get("/usernames/{username}", cfg.ProfileHandler.UsernameAvailable)
		r.With(optional).Get("/profiles/{username}", cfg.ProfileHandler.Public)
	}

	if cfg.RequireJWT != nil {
		r.Route("/me", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Use(userLimit)
			if cfg.UsersHandler != nil {
				r.Get("/", cfg.UsersHandler.Me)
			}
			if cfg.ProfileHandler != nil {
				r.Get("/profile", cfg.ProfileHandler.Mine)
				r.Post("/profile", cfg.ProfileHandler.Setup)
				r.Patch("/profile", cfg.ProfileHandler.Update)
				r.Delete("/profile", cfg.ProfileHandler.Delete)
				r.Put("/profile/avatar", cfg.ProfileHandler.UploadAvatar)
			}
		})
	}

	return r
}

func orPassThrough(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
