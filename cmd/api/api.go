package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Nasaee/taskboard/internal/config"
	"github.com/Nasaee/taskboard/internal/task"
	"github.com/Nasaee/taskboard/internal/web"
)

type application struct {
	config      *config.Config
	logger      *slog.Logger
	taskService task.Service
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.FrontendURL}, // origin ของ frontend
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // cache preflight 5 นาที
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(app.logger))
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	taskHandler := task.NewHandler(app.taskService, app.logger)
	r.Route("/tasks", taskHandler.Routes)

	r.Handle("/", web.Handler())

	return r
}

// run serves h until ctx is cancelled, then gives in-flight requests
// ShutdownTimeout seconds to finish.
func (app *application) run(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      h,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "addr", app.config.Addr, "store", app.config.Store.Driver, "env", app.config.AppEnv)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		// listen พังก่อนได้รับ signal
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", app.config.Addr, err)
	case <-ctx.Done():
	}

	timeout := time.Duration(app.config.ShutdownTimeout) * time.Second
	app.logger.Info("shutting down", "cause", context.Cause(ctx), "timeout", timeout)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	app.logger.Info("server stopped")
	return nil
}
