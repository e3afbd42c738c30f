// Package web serves the timesheet as a JSON API for browser clients.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/timesheet/internal/auth"
	"github.com/julianstephens/timesheet/internal/calendar"
	"github.com/julianstephens/timesheet/internal/constants"
	"github.com/julianstephens/timesheet/internal/logger"
	"github.com/julianstephens/timesheet/internal/notifier"
	"github.com/julianstephens/timesheet/internal/timesheet"
	"github.com/julianstephens/timesheet/internal/workdate"
)

// Config holds server settings.
type Config struct {
	Addr           string
	Rules          workdate.Rules
	Locale         calendar.Locale
	RequestTimeout time.Duration
	Now            func() time.Time
}

// Deps are the shared collaborators. Every request builds its own
// controller on top of them.
type Deps struct {
	Source  timesheet.Source
	Deleter timesheet.Deleter
	Session *auth.Session
	Toasts  *notifier.Store
}

// Server handles HTTP requests
type Server struct {
	Router *chi.Mux
	config Config
	deps   Deps
}

// NewServer creates a server with its routes mounted.
func NewServer(config Config, deps Deps) *Server {
	if config.Addr == "" {
		config.Addr = constants.DefaultListenAddr
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = constants.DefaultRequestTimeout
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	// Toasts belong to the signed-in user.
	deps.Session.OnLogout(deps.Toasts.Clear)

	s := &Server{config: config, deps: deps}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.RequestTimeout))

	r.Get("/health", s.healthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", s.login)
		r.Delete("/session", s.logout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/me", s.me)
			r.Get("/timesheet", s.getTimesheet)
			r.Get("/timesheet/days/{dateKey}", s.getDay)
			r.Delete("/issues/{issueID}/worklogs/{worklogID}", s.deleteWorklog)
			r.Get("/toasts", s.listToasts)
			r.Delete("/toasts/{toastID}", s.dismissToast)
		})
	})

	s.Router = r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Timesheet API listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down timesheet API")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs each request through the application logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			logger.Info("HTTP request",
				"id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

type userKey struct{}

func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.deps.Session.Current()
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFrom(ctx context.Context) auth.User {
	user, _ := ctx.Value(userKey{}).(auth.User)
	return user
}

// controller returns a fresh controller for the signed-in user. Requests
// never share controller state.
func (s *Server) controller(ctx context.Context) *timesheet.Controller {
	return timesheet.New(
		timesheet.Deps{
			Source:   s.deps.Source,
			Deleter:  s.deps.Deleter,
			Notifier: s.deps.Toasts,
		},
		timesheet.Options{
			UserID: userFrom(ctx).ID,
			Rules:  s.config.Rules,
			Locale: s.config.Locale,
			Now:    s.config.Now,
		},
	)
}
