package task

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Nasaee/taskboard/pkg/utils"
	"github.com/go-chi/chi/v5"
)

// =============== Handler struct ==================

type Handler struct {
	svc      Service
	exporter *Exporter
	logger   *slog.Logger
}

func NewHandler(svc Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		svc:      svc,
		exporter: NewExporter(svc),
		logger:   logger,
	}
}

// Routes mounts the task endpoints on r (normally under /tasks).
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListTasks)
	r.Post("/", h.CreateTask)
	r.Delete("/", h.ClearTasks)
	r.Get("/stats", h.Stats)
	r.Get("/export", h.Export)
	r.Get("/{id}", h.GetTask)
	r.Put("/{id}", h.UpdateTask)
	r.Delete("/{id}", h.DeleteTask)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg, "error", err, "method", r.Method, "path", r.URL.Path)
	utils.WriteError(w, http.StatusInternalServerError, msg)
}

// GET /tasks
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to list tasks", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, tasks)
}

// GET /tasks/{id}
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "task not found")
			return
		}
		h.internalError(w, r, "failed to get task", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, t)
}

// POST /tasks
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	t, err := h.svc.CreateTask(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, "failed to create task", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, t)
}

// PUT /tasks/{id}
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	t, err := h.svc.UpdateTask(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "task not found")
		default:
			h.internalError(w, r, "failed to update task", err)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, t)
}

// DELETE /tasks/{id}
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "task not found")
			return
		}
		h.internalError(w, r, "failed to delete task", err)
		return
	}

	utils.NoContent(w)
}

// DELETE /tasks
func (h *Handler) ClearTasks(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearTasks(r.Context()); err != nil {
		h.internalError(w, r, "failed to clear tasks", err)
		return
	}

	utils.NoContent(w)
}

// GET /tasks/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to compute stats", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, st)
}

// GET /tasks/export?format=json|csv|pdf
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	b, err := h.exporter.Export(r.Context(), format)
	if err != nil {
		if errors.Is(err, ErrUnknownFormat) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, "failed to export tasks", err)
		return
	}

	w.Header().Set("Content-Type", ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
