// Package server assembles the HTTP script execution service: user
// accounts, login tokens, and the stored Lunfardo scripts a logged-in user
// can create, update, and run. Route handling lives in the api, middle, and
// result subpackages; this file wires them to a chi.Router and handles
// process-level listen/serve concerns.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lunfardo-lang/lunfardo/server/api"
	"github.com/lunfardo-lang/lunfardo/server/dao"
	"github.com/lunfardo-lang/lunfardo/server/middle"
	"github.com/lunfardo-lang/lunfardo/server/tunas"
)

// Server is a running script execution service: a configured router bound
// to a persistence store.
type Server struct {
	router http.Handler
	db     dao.Store
}

// New creates a Server from cfg, connecting to the configured persistence
// layer. Call ServeForever to start listening.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}

	backend := tunas.Service{DB: store}
	unauthDelay := cfg.UnauthDelay()

	a := api.API{
		Backend:     backend,
		UnauthDelay: unauthDelay,
		Secret:      cfg.TokenSecret,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middle.DontPanic())

	requireAuth := middle.RequireAuth(store.Users(), cfg.TokenSecret, unauthDelay, dao.User{})
	optionalAuth := middle.OptionalAuth(store.Users(), cfg.TokenSecret, unauthDelay, dao.User{})

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.With(optionalAuth).Get("/info", a.HTTPGetInfo())

		r.With(optionalAuth).Post("/login", a.HTTPCreateLogin())
		r.With(requireAuth).Delete("/login/{id}", a.HTTPDeleteLogin())
		r.With(requireAuth).Post("/tokens", a.HTTPCreateToken())

		r.With(optionalAuth).Post("/users", a.HTTPCreateUser())

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/users/{id}", a.HTTPGetUser())
			r.Patch("/users/{id}", a.HTTPUpdateUser())
			r.Delete("/users/{id}", a.HTTPDeleteUser())

			r.Get("/scripts", a.HTTPGetAllScripts())
			r.Post("/scripts", a.HTTPCreateScript())
			r.Get("/scripts/{id}", a.HTTPGetScript())
			r.Put("/scripts/{id}", a.HTTPUpdateScript())
			r.Delete("/scripts/{id}", a.HTTPDeleteScript())

			r.Post("/scripts/{id}/runs", a.HTTPCreateRun())
			r.Get("/scripts/{id}/runs", a.HTTPGetAllRuns())
			r.Get("/runs/{runID}", a.HTTPGetRun())
		})
	})

	return &Server{router: r, db: store}, nil
}

// CreateUser creates a new user directly against the Server's backend store,
// bypassing the HTTP API. Useful for seeding the first admin account from a
// CLI entrypoint before anyone can log in.
func (s *Server) CreateUser(username, password, email string, role dao.Role) error {
	backend := tunas.Service{DB: s.db}
	_, err := backend.CreateUser(context.Background(), username, password, email, role)
	return err
}

// ServeForever starts listening on addr and blocks until the server exits
// or encounters a fatal error.
func (s *Server) ServeForever(addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return httpServer.ListenAndServe()
}

// Close releases the Server's persistence resources.
func (s *Server) Close() error {
	return s.db.Close()
}
