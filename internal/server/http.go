package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cscreviewph/exam-platform/internal/attempt"
	"github.com/cscreviewph/exam-platform/internal/auth"
	"github.com/cscreviewph/exam-platform/internal/config"
	"github.com/cscreviewph/exam-platform/internal/exam"
	"github.com/cscreviewph/exam-platform/internal/question"
)

// Handlers bundles the per-domain HTTP handlers wired into the server.
type Handlers struct {
	Auth     *auth.HTTPHandlers
	Attempt  *attempt.HTTPHandlers
	Question *question.HTTPHandlers
}

// NewHTTPServer wires all API routes for the service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redis *redis.Client, authSvc *auth.Service, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, redis); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Exam catalog. Static data, no auth required.
	mux.HandleFunc("GET /v1/exams", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"exams": exam.All()})
	})

	if h.Auth != nil {
		mux.HandleFunc("POST /v1/auth/register", h.Auth.Register)
		mux.HandleFunc("POST /v1/auth/login", h.Auth.Login)
		mux.HandleFunc("POST /v1/auth/refresh", h.Auth.RefreshToken)
		mux.HandleFunc("POST /v1/auth/forgot-password", h.Auth.ForgotPassword)
		mux.HandleFunc("POST /v1/auth/reset-password", h.Auth.ResetPassword)
		mux.HandleFunc("GET /v1/oauth/{provider}/start", h.Auth.OAuthStart)
		mux.HandleFunc("GET /v1/oauth/{provider}/callback", h.Auth.OAuthCallback)
		mux.Handle("GET /v1/users/me", auth.RequireAuth(http.HandlerFunc(h.Auth.GetMe)))
	}

	if h.Attempt != nil {
		mux.Handle("POST /v1/attempts", auth.RequireAuth(http.HandlerFunc(h.Attempt.Create)))
		mux.Handle("GET /v1/attempts", auth.RequireAuth(http.HandlerFunc(h.Attempt.List)))
		mux.Handle("GET /v1/attempts/{id}", auth.RequireAuth(http.HandlerFunc(h.Attempt.Get)))
		mux.Handle("PUT /v1/attempts/{id}/answers/{questionId}", auth.RequireAuth(http.HandlerFunc(h.Attempt.SaveAnswer)))
		mux.Handle("POST /v1/finalize", auth.RequireAuth(http.HandlerFunc(h.Attempt.Finalize)))
	}

	if h.Question != nil {
		mux.HandleFunc("POST /v1/seed", h.Question.Seed)
	}

	var handler http.Handler = mux
	if authSvc != nil {
		handler = auth.AuthMiddleware(authSvc, logger)(mux)
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redis *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if err := redis.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}
