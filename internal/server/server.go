// Package server assembles the HTTP router and owns the server lifecycle.
package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	accounthandler "demo-bank/backend/internal/account/handler"
	authhandler "demo-bank/backend/internal/auth/handler"
	authservice "demo-bank/backend/internal/auth/service"
	"demo-bank/backend/internal/logging"
	"demo-bank/backend/internal/server/httpjson"
	"demo-bank/backend/internal/server/middleware"
)

// Server is the HTTP server for the banking API.
type Server struct {
	http *http.Server
	log  logging.Logger
}

// New builds the router and returns a server listening on addr.
func New(
	addr string,
	db *sql.DB,
	authSvc *authservice.AuthService,
	authH *authhandler.HTTPHandler,
	accountH *accounthandler.HTTPHandler,
	log logging.Logger,
) *Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ClientIPMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Telemetry())
	r.Use(middleware.RequestLogger(log))

	r.Get("/healthz", healthz(db))

	requireAuth := middleware.RequireAuth(authSvc, httpjson.Error)
	authH.Mount(r, requireAuth)
	accountH.Mount(r, requireAuth)

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// healthz reports readiness: the process is up and the database answers a
// ping within two seconds.
func healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			httpjson.Write(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ListenAndServe blocks serving requests until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.log.Info(context.Background(), "http server listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
