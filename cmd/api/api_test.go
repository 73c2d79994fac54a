package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Nasaee/taskboard/internal/config"
	"github.com/Nasaee/taskboard/internal/task"
)

func testApp(t *testing.T) *application {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Addr:        ":0",
		FrontendURL: "http://localhost:3000",
		Store:       config.StoreConfig{Driver: config.DriverFile, DataDir: t.TempDir()},
	}

	repo, closeRepo, err := openRepository(context.Background(), cfg.Store, logger)
	if err != nil {
		t.Fatalf("openRepository failed: %v", err)
	}
	t.Cleanup(closeRepo)

	return &application{config: cfg, logger: logger, taskService: task.NewService(repo)}
}

func TestMountRoutes(t *testing.T) {
	h := testApp(t).mount()

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/tasks", "", http.StatusOK},
		{http.MethodPost, "/tasks", `{"title":"Buy milk"}`, http.StatusCreated},
		{http.MethodGet, "/tasks/1", "", http.StatusOK},
		{http.MethodGet, "/tasks/stats", "", http.StatusOK},
		{http.MethodPatch, "/tasks/1", `{}`, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		var body io.Reader
		if tt.body != "" {
			body = strings.NewReader(tt.body)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, body))
		if rec.Code != tt.want {
			t.Errorf("%s %s: got %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	h := testApp(t).mount()

	req := httptest.NewRequest(http.MethodOptions, "/tasks/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin: got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPut) {
		t.Errorf("Allow-Methods: got %q", got)
	}
}

func TestOpenRepositoryDrivers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	for _, cfg := range []config.StoreConfig{
		{Driver: config.DriverMemory},
		{Driver: config.DriverFile, DataDir: t.TempDir()},
	} {
		repo, closeRepo, err := openRepository(ctx, cfg, logger)
		if err != nil {
			t.Errorf("openRepository(%s) failed: %v", cfg.Driver, err)
			continue
		}
		if _, err := repo.Create(ctx, "x", ""); err != nil {
			t.Errorf("%s: Create failed: %v", cfg.Driver, err)
		}
		closeRepo()
	}

	sqlitePath := filepath.Join(t.TempDir(), "tasks.db")
	if repo, closeRepo, err := openRepository(ctx, config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: sqlitePath}, logger); err == nil {
		if _, err := repo.List(ctx); err != nil {
			t.Errorf("sqlite: List failed: %v", err)
		}
		closeRepo()
	}

	if _, _, err := openRepository(ctx, config.StoreConfig{Driver: "mongo"}, logger); err == nil {
		t.Error("openRepository(mongo): expected error")
	}
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	app := testApp(t)
	app.config.Addr = "127.0.0.1:0"
	app.config.ShutdownTimeout = 1

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.run(ctx, app.mount()) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: got %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the context was cancelled")
	}
}

func TestRunReportsListenError(t *testing.T) {
	app := testApp(t)
	app.config.Addr = "127.0.0.1:-1"
	app.config.ShutdownTimeout = 1

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.run(ctx, app.mount()); err == nil || !strings.Contains(err.Error(), "listen") {
		t.Errorf("run: got %v, want listen error", err)
	}
}
